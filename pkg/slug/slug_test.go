// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/resolve/pkg/slug"
)

func TestFrom(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple words", input: "Social Media", expected: "social-media"},
		{name: "accents removed", input: "Café au lait", expected: "cafe-au-lait"},
		{name: "punctuation collapsed", input: "Sugar!!  (refined)", expected: "sugar-refined"},
		{name: "leading and trailing junk", input: "  --Smoking--  ", expected: "smoking"},
		{name: "digits kept", input: "Level 2 snacking", expected: "level-2-snacking"},
		{name: "empty input", input: "", expected: ""},
		{name: "only symbols", input: "!!!", expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, slug.From(testCase.input))
		})
	}
}
