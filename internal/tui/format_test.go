package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{230000, "230,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCount(tt.in))
	}
}

func TestFormatUpdated(t *testing.T) {
	assert.Equal(t, "unknown", formatUpdated(time.Time{}))
	assert.Equal(t, "3 days ago", formatUpdated(time.Now().Add(-72*time.Hour)))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 20))
	assert.Equal(t, "abc…", truncateText("abcdefgh", 4))
	assert.Equal(t, "", truncateText("anything", 0))
}
