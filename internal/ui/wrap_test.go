package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want []string
	}{
		{"", 10, []string{""}},
		{"Pre-boiling phase", 40, []string{"Pre-boiling phase"}},
		{
			"Heating automatically stopped - maximum temperature reached",
			20,
			[]string{"Heating", "automatically", "stopped - maximum", "temperature reached"},
		},
		{"supercalifragilistic word", 8, []string{"supercalifragilistic", "word"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, wrap(tc.in, tc.n), tc.in)
	}
}
