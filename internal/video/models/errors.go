package models

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid arguments")
	ErrNotConfigured   = errors.New("not configured")
	ErrUpstream        = errors.New("upstream generation failed")
)
