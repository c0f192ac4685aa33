package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name       string
		service    string
		objectType string
		identifier string
		params     []string
		expected   string
	}{
		{
			name:       "without params",
			service:    "transcript",
			objectType: "youtube",
			identifier: "dQw4w9WgXcQ",
			expected:   "tubequiz:transcript:youtube:dQw4w9WgXcQ",
		},
		{
			name:       "with params",
			service:    "quizgen",
			objectType: "mcq",
			identifier: "abc123",
			params:     []string{"easy", "5"},
			expected:   "tubequiz:quizgen:mcq:abc123:easy_5",
		},
		{
			name:       "single param",
			service:    "session",
			objectType: "state",
			identifier: "01HXYZ",
			params:     []string{"v1"},
			expected:   "tubequiz:session:state:01HXYZ:v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateCacheKey(tt.service, tt.objectType, tt.identifier, tt.params...)
			assert.Equal(t, tt.expected, got)
		})
	}
}
