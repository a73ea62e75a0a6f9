// Package codec は gRPC のメッセージを JSON で送受信するコーデックを提供します。
// import するだけで content-subtype "json" として登録されます。
package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Name は grpc.CallContentSubtype に指定するコーデック名です。
const Name = "json"

func init() {
	encoding.RegisterCodec(JSON{})
}

// JSON は encoding.Codec の JSON 実装です。
type JSON struct{}

// Marshal は v を JSON に変換します。
func (JSON) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal は JSON を v に変換します。
func (JSON) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: unmarshal %T: %w", v, err)
	}
	return nil
}

// Name はコーデック名を返します。
func (JSON) Name() string {
	return Name
}
