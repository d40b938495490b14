package pipeline

import "errors"

// Failure classes. Every error returned by Run wraps exactly one of these.
var (
	ErrInvalidInput  = errors.New("invalid input format")
	ErrInvalidOutput = errors.New("invalid output format")
	ErrDecode        = errors.New("decode failed")
	ErrEncode        = errors.New("encode failed")
	ErrWrite         = errors.New("write failed")
)
