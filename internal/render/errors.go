// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"fmt"

	"github.com/pdiddy/examgen/pkg/types"
)

// Sentinels matched by the typed errors below.
var (
	ErrUnknownRenderer = errors.New("no renderer for question type")
	ErrMissingLanguage = errors.New("question not available in language")
)

// UnknownRendererError reports a question whose type has no registered
// renderer. Only that question fails; the rest of a batch still renders.
type UnknownRendererError struct {
	ID   string
	Type types.QuestionType
}

func (e *UnknownRendererError) Error() string {
	return fmt.Sprintf("question %s: %v %q", e.ID, ErrUnknownRenderer, e.Type)
}

func (e *UnknownRendererError) Is(target error) bool { return target == ErrUnknownRenderer }

// MissingLanguageError reports a question left out because it has no
// content in the requested language and the fallback policy is skip.
type MissingLanguageError struct {
	ID       string
	Language types.Language
}

func (e *MissingLanguageError) Error() string {
	return fmt.Sprintf("question %s: %v %s", e.ID, ErrMissingLanguage, e.Language)
}

func (e *MissingLanguageError) Is(target error) bool { return target == ErrMissingLanguage }
