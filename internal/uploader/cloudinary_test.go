package uploader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{-3, "0:00"},
		{5, "0:05"},
		{59.9, "0:59"},
		{60, "1:00"},
		{754, "12:34"},
		{3600, "60:00"},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, FormatDuration(tt.seconds), "FormatDuration(%v)", tt.seconds)
	}
}
