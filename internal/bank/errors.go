// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"errors"
	"fmt"
)

// ErrSourceUnreadable matches every SourceError. It is fatal: nothing is
// generated from a bank that cannot be opened or decoded.
var ErrSourceUnreadable = errors.New("question bank unreadable")

// Row rejection causes. Each wraps ErrInvalidRow, so errors.Is(err,
// ErrInvalidRow) holds for every rejected row, duplicates included.
var (
	ErrInvalidRow     = errors.New("invalid row")
	ErrDuplicateID    = fmt.Errorf("%w: duplicate id", ErrInvalidRow)
	ErrUnknownType    = fmt.Errorf("%w: unknown question type", ErrInvalidRow)
	ErrUnknownSubject = fmt.Errorf("%w: unknown subject", ErrInvalidRow)
	ErrMissingContent = fmt.Errorf("%w: missing content", ErrInvalidRow)
	ErrOptionMismatch = fmt.Errorf("%w: options differ between languages", ErrInvalidRow)
)

// RowError describes one problem with one source row. Rejections abort only
// their own row; warnings (dropped language content) keep the row.
type RowError struct {
	// Row is the source line (CSV) or sheet row (XLSX) where the record starts.
	Row int `json:"row" yaml:"row"`

	// ID is the question id when the row had one.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Field names the offending column, if any.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Reason is a human-readable description naming the offending value.
	Reason string `json:"reason" yaml:"reason"`

	// Err is the sentinel cause.
	Err error `json:"-" yaml:"-"`
}

func (e *RowError) Error() string {
	msg := fmt.Sprintf("row %d", e.Row)
	if e.ID != "" {
		msg += fmt.Sprintf(" (id %s)", e.ID)
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	return msg + ": " + e.Reason
}

func (e *RowError) Unwrap() error { return e.Err }

// IsDuplicate reports whether the row was rejected for reusing an id.
func (e *RowError) IsDuplicate() bool { return errors.Is(e.Err, ErrDuplicateID) }

// SourceError reports a bank that could not be opened, read or decoded.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrSourceUnreadable, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrSourceUnreadable, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSourceUnreadable) true for every SourceError.
func (e *SourceError) Is(target error) bool { return target == ErrSourceUnreadable }
