package codec

import (
	"testing"

	"google.golang.org/grpc/encoding"
)

func TestJSON_Registered(t *testing.T) {
	t.Parallel()

	if encoding.GetCodec(Name) == nil {
		t.Fatal("json codec is not registered")
	}
}

func TestJSON_EmptyPayload(t *testing.T) {
	t.Parallel()

	var out struct {
		ID string `json:"id"`
	}
	if err := (JSON{}).Unmarshal(nil, &out); err != nil {
		t.Fatalf("Unmarshal returned error for empty payload: %v", err)
	}

	if err := (JSON{}).Unmarshal([]byte(`{"id":"exit-1"}`), &out); err != nil || out.ID != "exit-1" {
		t.Fatalf("unexpected result %+v err=%v", out, err)
	}
	if err := (JSON{}).Unmarshal([]byte(`{`), &out); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
