package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrReadOnly       = errors.New("movie catalog is read-only")
)
