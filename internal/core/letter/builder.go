package letter

import (
	"context"
	"strings"
	"time"

	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"github.com/ogurasousui/exit-formality/internal/core/profile"
	"github.com/ogurasousui/exit-formality/internal/core/tenure"
)

// Kind は書面の種別です。
type Kind string

const (
	KindRelieving  Kind = "relieving"
	KindExperience Kind = "experience"
)

// kindStrategies は書面種別ごとの在籍期間算出方式です。
// 退職証明(relieving)は簡易方式、在職証明(experience)は暦どおりの方式を使います。
var kindStrategies = map[Kind]tenure.Strategy{
	KindRelieving:  tenure.Approximate,
	KindExperience: tenure.CalendarExact,
}

// ParseKind は書面種別を解釈します。
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := kindStrategies[kind]; !ok {
		return "", ErrUnknownKind
	}
	return kind, nil
}

// Company は書面に差し込む会社情報です。
type Company struct {
	Name           string
	Address        string
	City           string
	SignatoryName  string
	SignatoryTitle string
}

// Data は書面レンダリングに渡す差し込みデータです。
type Data struct {
	Kind           Kind
	IssueDate      string
	ExitID         string
	EmployeeID     string
	EmployeeName   string
	Prefix         string
	Pronoun        string
	Position       string
	Department     string
	Address        string
	JoiningDate    string
	LastWorkingDay string
	Tenure         string
	TenureStrategy tenure.Strategy
	Company        Company
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// ExitSource は申請を読み出す抽象です。exit.Service が満たします。
type ExitSource interface {
	GetExit(ctx context.Context, in exit.GetExitInput) (*exit.ExitRequest, error)
}

// ProfileSource は社員情報を読み出す抽象です。
type ProfileSource interface {
	FindProfile(ctx context.Context, employeeID string) (*profile.Profile, error)
}

// Builder は完了した申請から書面データを組み立てます。副作用はありません。
type Builder struct {
	exits    ExitSource
	profiles ProfileSource
	company  Company
	clock    Clock
}

// NewBuilder は Builder を生成します。
func NewBuilder(exits ExitSource, profiles ProfileSource, company Company, clock Clock) *Builder {
	if clock == nil {
		clock = realClock{}
	}
	return &Builder{exits: exits, profiles: profiles, company: company, clock: clock}
}

// BuildInput は書面データ生成の入力です。
type BuildInput struct {
	ExitID string
	Actor  exit.Actor
	Kind   Kind
}

// Build は生成時点で申請を読み直し、completed であることを確認してから組み立てます。
func (b *Builder) Build(ctx context.Context, in BuildInput) (*Data, error) {
	kind, err := ParseKind(string(in.Kind))
	if err != nil {
		return nil, err
	}

	req, err := b.exits.GetExit(ctx, exit.GetExitInput{ID: in.ExitID, Actor: in.Actor})
	if err != nil {
		return nil, err
	}
	if req.Status != exit.StatusCompleted {
		return nil, ErrNotEligible
	}

	prof, err := b.profiles.FindProfile(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	return Compose(req, prof, b.company, kind, b.clock.Now())
}

// Compose は申請・社員情報・会社情報から書面データを組み立てる純粋関数です。
func Compose(req *exit.ExitRequest, prof *profile.Profile, company Company, kind Kind, issuedAt time.Time) (*Data, error) {
	if req == nil || req.Status != exit.StatusCompleted {
		return nil, ErrNotEligible
	}
	if prof == nil {
		return nil, ErrMissingProfile
	}
	strategy, ok := kindStrategies[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	calc, _ := tenure.For(strategy)

	end := req.ProposedLastWorkingDay
	if end == nil {
		end = req.CompletedAt
	}
	pronouns := PronounsFor(prof.Gender)

	return &Data{
		Kind:           kind,
		IssueDate:      LongDate(&issuedAt),
		ExitID:         req.ID,
		EmployeeID:     req.EmployeeID,
		EmployeeName:   firstNonEmpty(prof.Name, req.EmployeeName),
		Prefix:         pronouns.Prefix,
		Pronoun:        pronouns.Pronoun,
		Position:       firstNonEmpty(prof.Position, req.Position),
		Department:     firstNonEmpty(prof.Department, req.Department),
		Address:        prof.Address,
		JoiningDate:    LongDate(prof.DateOfJoining),
		LastWorkingDay: LongDate(end),
		Tenure:         calc.Between(prof.DateOfJoining, end).Phrase(),
		TenureStrategy: strategy,
		Company:        company,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
