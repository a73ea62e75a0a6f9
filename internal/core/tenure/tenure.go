// Package tenure は在籍期間の算出を提供します。
//
// 算出方式は2種類あり、呼び出し側が Strategy で明示的に選択します。
// Approximate は 365 日 = 1 年、30 日 = 1 か月として換算する簡易方式で、
// 閏年や月の長さを考慮しないため長期在籍では誤差が生じます。
// CalendarExact は暦の年月日を引き算し、日・月の繰り下がりを行う方式です。
package tenure

import (
	"fmt"
	"strings"
	"time"
)

// Strategy は算出方式の名前です。
type Strategy string

const (
	Approximate   Strategy = "approximate"
	CalendarExact Strategy = "calendar_exact"
)

// LessThanOneYear は年・月がともに 0 の場合の表記です。
const LessThanOneYear = "less than one year"

// Duration は在籍期間の算出結果です。Known が false の場合は算出できなかったことを示します。
type Duration struct {
	Years  int
	Months int
	Known  bool
}

// Unknown は入力不備時に返す値です。
var Unknown = Duration{}

// Phrase は "2 years 3 months" のような表記を返します。算出できない場合は空文字です。
func (d Duration) Phrase() string {
	if !d.Known {
		return ""
	}
	if d.Years == 0 && d.Months == 0 {
		return LessThanOneYear
	}
	parts := make([]string, 0, 2)
	if d.Years > 0 {
		parts = append(parts, unit(d.Years, "year"))
	}
	if d.Months > 0 {
		parts = append(parts, unit(d.Months, "month"))
	}
	return strings.Join(parts, " ")
}

func unit(n int, word string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, word)
	}
	return fmt.Sprintf("%d %s", n, word)
}

// Calculator は入社日と終了日から在籍期間を算出します。
// いずれかが nil または終了日が入社日より前の場合は Unknown を返し、エラーにはしません。
type Calculator interface {
	Strategy() Strategy
	Between(join, end *time.Time) Duration
}

// For は Strategy に対応する Calculator を返します。未知の値は false を返します。
func For(s Strategy) (Calculator, bool) {
	switch s {
	case Approximate:
		return approximate{}, true
	case CalendarExact:
		return calendarExact{}, true
	default:
		return nil, false
	}
}

const (
	day         = 24 * time.Hour
	approxYear  = 365 * day
	approxMonth = 30 * day
)

type approximate struct{}

func (approximate) Strategy() Strategy { return Approximate }

func (approximate) Between(join, end *time.Time) Duration {
	if join == nil || end == nil {
		return Unknown
	}
	delta := end.Sub(*join)
	if delta < 0 {
		return Unknown
	}
	years := int(delta / approxYear)
	months := int((delta % approxYear) / approxMonth)
	return Duration{Years: years, Months: months, Known: true}
}

type calendarExact struct{}

func (calendarExact) Strategy() Strategy { return CalendarExact }

func (calendarExact) Between(join, end *time.Time) Duration {
	if join == nil || end == nil {
		return Unknown
	}
	jy, jm, jd := join.Date()
	ey, em, ed := end.Date()

	years := ey - jy
	months := int(em) - int(jm)
	days := ed - jd

	// 端数の日数は出力しないため、繰り下がりのみ反映する
	if days < 0 {
		months--
	}
	if months < 0 {
		months += 12
		years--
	}
	if years < 0 {
		return Unknown
	}
	return Duration{Years: years, Months: months, Known: true}
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// ParseDate は複数の書式で日付を解釈します。解釈できない場合は nil を返します。
func ParseDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}

// BetweenStrings は文字列の日付から在籍期間を算出します。
func BetweenStrings(c Calculator, join, end string) Duration {
	return c.Between(ParseDate(join), ParseDate(end))
}
