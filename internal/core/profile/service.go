package profile

import (
	"context"
	"strings"
	"time"
)

// Service は社員情報の参照ユースケースです。
type Service struct {
	repo Repository
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindProfile は社員 ID で社員情報を取得し、書面生成向けに正規化します。
func (s *Service) FindProfile(ctx context.Context, employeeID string) (*Profile, error) {
	id := strings.TrimSpace(employeeID)
	if id == "" {
		return nil, ErrInvalidEmployeeID
	}

	found, err := s.repo.FindByEmployeeID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized := *found
	normalized.Name = strings.TrimSpace(found.Name)
	normalized.Gender = NormalizeGender(string(found.Gender))
	normalized.Department = strings.TrimSpace(found.Department)
	normalized.Position = strings.TrimSpace(found.Position)
	normalized.Address = strings.TrimSpace(found.Address)
	if found.DateOfJoining != nil {
		t := found.DateOfJoining.UTC()
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		normalized.DateOfJoining = &d
	}
	return &normalized, nil
}

// NormalizeGender は表記ゆれを吸収します。male / female 以外は未指定として扱います。
func NormalizeGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	default:
		return GenderUnspecified
	}
}
