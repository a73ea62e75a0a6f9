package letter

import "errors"

var (
	// ErrNotEligible は完了していない申請に対して書面生成を試みた場合に返却されます。
	ErrNotEligible = errors.New("letter: exit request is not completed")
	// ErrUnknownKind は書面種別が不正な場合に返却されます。
	ErrUnknownKind = errors.New("letter: unknown letter kind")
	// ErrMissingProfile は社員情報が取得できない場合に返却されます。
	ErrMissingProfile = errors.New("letter: employee profile is required")
)
