package profile

import "time"

// Gender は書面の敬称・代名詞の選択に使う性別区分です。
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = ""
)

// Profile は外部の社員マスタから参照する社員情報です。このサービスでは読み取り専用です。
type Profile struct {
	EmployeeID    string
	Name          string
	Gender        Gender
	DateOfJoining *time.Time
	Department    string
	Position      string
	Address       string
	UpdatedAt     time.Time
}
