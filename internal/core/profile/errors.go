package profile

import "errors"

var (
	ErrInvalidEmployeeID = errors.New("profile: invalid employee id")
	ErrProfileNotFound   = errors.New("profile: not found")
)
