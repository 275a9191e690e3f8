package property

import "errors"

var (
	ErrNotFound      = errors.New("property not found")
	ErrForbidden     = errors.New("not enough permissions")
	ErrValidation    = errors.New("invalid property data")
	ErrInvalidStatus = errors.New("invalid property status")
)
