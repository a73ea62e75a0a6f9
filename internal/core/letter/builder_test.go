package letter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"github.com/ogurasousui/exit-formality/internal/core/profile"
	"github.com/ogurasousui/exit-formality/internal/core/tenure"
)

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}

type stubExitSource struct {
	req   *exit.ExitRequest
	err   error
	input exit.GetExitInput
}

func (s *stubExitSource) GetExit(_ context.Context, in exit.GetExitInput) (*exit.ExitRequest, error) {
	s.input = in
	if s.err != nil {
		return nil, s.err
	}
	return s.req.Clone(), nil
}

type stubProfileSource struct {
	profile *profile.Profile
	err     error
}

func (s *stubProfileSource) FindProfile(_ context.Context, _ string) (*profile.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	clone := *s.profile
	return &clone, nil
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func completedRequest() *exit.ExitRequest {
	return &exit.ExitRequest{
		ID:                     "exit-1",
		EmployeeID:             "emp-1",
		EmployeeName:           "Arun Kumar",
		Department:             "Engineering",
		Position:               "Engineer",
		ProposedLastWorkingDay: day(2024, 6, 1),
		Status:                 exit.StatusCompleted,
		CompletedAt:            day(2024, 5, 30),
	}
}

var testCompany = Company{Name: "Acme Engineering", City: "Chennai", SignatoryName: "R. Iyer", SignatoryTitle: "HR Manager"}

func TestOrdinalSuffix(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd", 30: "th", 31: "st", 111: "th", 112: "th", 101: "st",
	}
	for d, want := range tests {
		if got := OrdinalSuffix(d); got != want {
			t.Errorf("OrdinalSuffix(%d) = %s, want %s", d, got, want)
		}
	}
}

func TestLongDate(t *testing.T) {
	t.Parallel()

	if got := LongDate(day(2021, 6, 1)); got != "1st June 2021" {
		t.Fatalf("unexpected long date %q", got)
	}
	if got := LongDate(day(2024, 2, 22)); got != "22nd February 2024" {
		t.Fatalf("unexpected long date %q", got)
	}
	if got := LongDate(nil); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}
}

func TestPronounsFor(t *testing.T) {
	t.Parallel()

	if p := PronounsFor(profile.GenderMale); p.Prefix != "Mr." || p.Pronoun != "his" {
		t.Fatalf("unexpected male pronouns %+v", p)
	}
	if p := PronounsFor(profile.GenderFemale); p.Prefix != "Ms." || p.Pronoun != "her" {
		t.Fatalf("unexpected female pronouns %+v", p)
	}
	if p := PronounsFor(profile.GenderUnspecified); p.Prefix != "" || p.Pronoun != "their" {
		t.Fatalf("unexpected neutral pronouns %+v", p)
	}
}

func TestCompose_KindSelectsStrategy(t *testing.T) {
	t.Parallel()

	prof := &profile.Profile{EmployeeID: "emp-1", Name: "Arun Kumar", Gender: profile.GenderMale, DateOfJoining: day(2023, 1, 31), Address: "12 Lake Road"}
	req := completedRequest()
	req.ProposedLastWorkingDay = day(2023, 3, 1)
	issued := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	relieving, err := Compose(req, prof, testCompany, KindRelieving, issued)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if relieving.TenureStrategy != tenure.Approximate || relieving.Tenure != tenure.LessThanOneYear {
		t.Fatalf("relieving letter should use approximate tenure, got %s %q", relieving.TenureStrategy, relieving.Tenure)
	}

	experience, err := Compose(req, prof, testCompany, KindExperience, issued)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if experience.TenureStrategy != tenure.CalendarExact || experience.Tenure != "1 month" {
		t.Fatalf("experience letter should use calendar exact tenure, got %s %q", experience.TenureStrategy, experience.Tenure)
	}

	if experience.IssueDate != "3rd June 2024" || experience.JoiningDate != "31st January 2023" || experience.LastWorkingDay != "1st March 2023" {
		t.Fatalf("unexpected dates: %+v", experience)
	}
	if experience.Prefix != "Mr." || experience.Pronoun != "his" || experience.Company.Name != "Acme Engineering" {
		t.Fatalf("unexpected letter fields: %+v", experience)
	}
	if experience.Position != "Engineer" {
		t.Fatalf("expected position to fall back to the request, got %q", experience.Position)
	}
}

func TestCompose_NotCompleted(t *testing.T) {
	t.Parallel()

	req := completedRequest()
	req.Status = exit.StatusClearanceInProgress
	_, err := Compose(req, &profile.Profile{}, testCompany, KindExperience, time.Now())
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}
}

func TestBuilder_Build_ScenarioA(t *testing.T) {
	t.Parallel()

	exits := &stubExitSource{req: completedRequest()}
	profiles := &stubProfileSource{profile: &profile.Profile{EmployeeID: "emp-1", Name: "Arun Kumar", DateOfJoining: day(2021, 6, 1)}}
	builder := NewBuilder(exits, profiles, testCompany, stubClock{now: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	actor := exit.Actor{ID: "hr-1", Role: exit.RoleHR}

	for _, kind := range []Kind{KindRelieving, KindExperience} {
		data, err := builder.Build(context.Background(), BuildInput{ExitID: "exit-1", Actor: actor, Kind: kind})
		if err != nil {
			t.Fatalf("Build(%s) returned error: %v", kind, err)
		}
		if data.Tenure != "3 years" {
			t.Fatalf("Build(%s) tenure = %q, want \"3 years\"", kind, data.Tenure)
		}
		if data.Pronoun != "their" || data.Prefix != "" {
			t.Fatalf("expected neutral pronouns for unspecified gender, got %+v", data)
		}
	}
	if exits.input.Actor != actor || exits.input.ID != "exit-1" {
		t.Fatalf("expected actor to be forwarded, got %+v", exits.input)
	}
}

func TestBuilder_Build_RechecksStatus(t *testing.T) {
	t.Parallel()

	exits := &stubExitSource{req: completedRequest()}
	profiles := &stubProfileSource{profile: &profile.Profile{EmployeeID: "emp-1"}}
	builder := NewBuilder(exits, profiles, testCompany, nil)
	in := BuildInput{ExitID: "exit-1", Actor: exit.Actor{ID: "hr-1", Role: exit.RoleHR}, Kind: "Relieving"}

	if _, err := builder.Build(context.Background(), in); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	exits.req.Status = exit.StatusRejected
	if _, err := builder.Build(context.Background(), in); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible after rejection, got %v", err)
	}

	exits.err = exit.ErrExitNotFound
	if _, err := builder.Build(context.Background(), in); !errors.Is(err, exit.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after deletion, got %v", err)
	}
}

func TestBuilder_Build_UnknownKind(t *testing.T) {
	t.Parallel()

	builder := NewBuilder(&stubExitSource{req: completedRequest()}, &stubProfileSource{profile: &profile.Profile{}}, testCompany, nil)
	_, err := builder.Build(context.Background(), BuildInput{ExitID: "exit-1", Kind: "reference"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}
