package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "The Jazz Cats", want: "the-jazz-cats"},
		{name: "punctuation", in: "The Jazz Cats!", want: "the-jazz-cats"},
		{name: "runs collapse", in: "DJ  --  Nova", want: "dj-nova"},
		{name: "surrounding space", in: "  Warehouse 54  ", want: "warehouse-54"},
		{name: "empty", in: "", want: ""},
		{name: "only symbols", in: "!!!", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
