package core

import "errors"

var (
	ErrUnknownKind   = errors.New("unknown overlay kind")
	ErrMissingIndex  = errors.New("missing index mapping")
	ErrDuplicateID   = errors.New("duplicate series id")
	ErrColumnLength  = errors.New("column length mismatch")
	ErrDuplicateName = errors.New("duplicate column name")
)
