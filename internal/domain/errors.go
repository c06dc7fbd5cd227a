package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid scan status transition")
	ErrScanNotCompleted  = errors.New("scan is not completed")
	ErrUnknownModule     = errors.New("unknown module")
	ErrInvalidTargetType = errors.New("invalid target type: must be one of domain, email, ip, handle")
	ErrEmptyTarget       = errors.New("target is required")
	ErrInvalidEntityType = errors.New("invalid entity type")
)
