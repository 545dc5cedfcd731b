// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package i18n

import (
	"reflect"
	"testing"

	"github.com/pdiddy/examgen/pkg/types"
)

func TestForEveryLanguageComplete(t *testing.T) {
	for _, lang := range types.Languages {
		s := For(lang)
		v := reflect.ValueOf(s)
		for i := 0; i < v.NumField(); i++ {
			if v.Field(i).String() == "" {
				t.Errorf("%s: %s is empty", lang, v.Type().Field(i).Name)
			}
		}
	}
}

func TestForPhrases(t *testing.T) {
	if got := For(types.Swedish).Chapter; got != "Kapitel" {
		t.Errorf("sv chapter = %q", got)
	}
	if got := For(types.English).NotAvailable; got != "The question is not available in this language" {
		t.Errorf("en not available = %q", got)
	}
}
