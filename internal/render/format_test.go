package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso date", "2025-01-15", "January 15, 2025"},
		{"single digit day", "2025-03-05", "March 05, 2025"},
		{"unparseable passes through", "15/01/2025", "15/01/2025"},
		{"free text passes through", "on receipt", "on receipt"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDate(tt.in))
		})
	}
}
