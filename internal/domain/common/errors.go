package common

import "errors"

var (
	ErrNotFound      = errors.New("requested item not found")
	ErrBadRequest    = errors.New("bad request")
	ErrLowConfidence = errors.New("extraction confidence below configured floor")
)
