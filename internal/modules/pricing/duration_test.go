package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{0, "0 minutes"},
		{8.5, "8 minutes"},
		{45, "45 minutes"},
		{60, "1 hours 0 minutes"},
		{90, "1 hours 30 minutes"},
		{1440, "1 days 0 minutes"},
		{1475, "1 days 35 minutes"},
		{1500, "1 days 1 hours 0 minutes"},
		{3000, "2 days 2 hours 0 minutes"},
		{-5, "0 minutes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes), "minutes=%v", tt.minutes)
	}
}
