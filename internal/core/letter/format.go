package letter

import (
	"fmt"
	"time"

	"github.com/ogurasousui/exit-formality/internal/core/profile"
)

// OrdinalSuffix は日付の序数接尾辞(st / nd / rd / th)を返します。
func OrdinalSuffix(day int) string {
	switch {
	case day%10 == 1 && day%100 != 11:
		return "st"
	case day%10 == 2 && day%100 != 12:
		return "nd"
	case day%10 == 3 && day%100 != 13:
		return "rd"
	default:
		return "th"
	}
}

// LongDate は "1st June 2021" 形式の日付を返します。nil の場合は空文字です。
func LongDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%d%s %s %d", t.Day(), OrdinalSuffix(t.Day()), t.Month(), t.Year())
}

// Pronouns は書面で使う敬称と所有代名詞の組です。
type Pronouns struct {
	Prefix  string
	Pronoun string
}

// PronounsFor は性別から敬称・代名詞を選択します。
func PronounsFor(g profile.Gender) Pronouns {
	switch g {
	case profile.GenderMale:
		return Pronouns{Prefix: "Mr.", Pronoun: "his"}
	case profile.GenderFemale:
		return Pronouns{Prefix: "Ms.", Pronoun: "her"}
	default:
		return Pronouns{Prefix: "", Pronoun: "their"}
	}
}
