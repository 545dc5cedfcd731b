// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"sort"

	"github.com/pdiddy/examgen/internal/moodle"
	"github.com/pdiddy/examgen/pkg/types"
)

// Registry maps question types to renderers. It is populated once at
// start and read-only afterwards.
type Registry struct {
	renderers map[types.QuestionType]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[types.QuestionType]Renderer)}
}

// Default returns a registry holding the built-in renderers: short answer,
// number, essay, single choice and multi choice.
func Default() *Registry {
	r := NewRegistry()
	for _, rd := range []Renderer{
		ShortAnswer(),
		Number(),
		Essay(),
		SingleChoice(),
		MultiChoice(),
	} {
		if err := r.Register(rd); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds rd for its type. A type can be registered once.
func (r *Registry) Register(rd Renderer) error {
	t := rd.Type()
	if _, dup := r.renderers[t]; dup {
		return fmt.Errorf("renderer for type %q already registered", t)
	}
	r.renderers[t] = rd
	return nil
}

// Supports reports whether a renderer is registered for t.
func (r *Registry) Supports(t types.QuestionType) bool {
	_, ok := r.renderers[t]
	return ok
}

// Types returns the registered types, sorted.
func (r *Registry) Types() []types.QuestionType {
	out := make([]types.QuestionType, 0, len(r.renderers))
	for t := range r.renderers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) resolve(q *types.Question, opts Options) (Renderer, []Localized, error) {
	rd, ok := r.renderers[q.Type]
	if !ok {
		return nil, nil, &UnknownRendererError{ID: q.ID, Type: q.Type}
	}
	views, err := Views(q, opts.Languages, opts.Fallback)
	if err != nil {
		return nil, nil, err
	}
	return rd, views, nil
}

// Document renders q as a LaTeX fragment.
func (r *Registry) Document(q *types.Question, opts Options) (string, error) {
	rd, views, err := r.resolve(q, opts)
	if err != nil {
		return "", err
	}
	return rd.Document(q, views, opts), nil
}

// Quiz renders q as a Moodle question.
func (r *Registry) Quiz(q *types.Question, opts Options) (moodle.Question, error) {
	rd, views, err := r.resolve(q, opts)
	if err != nil {
		return moodle.Question{}, err
	}
	return rd.Quiz(q, views, opts), nil
}
