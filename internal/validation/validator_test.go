package validation

import (
	"strings"
	"testing"

	"tubequiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidateGenerateQuizRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name         string
		videoURL     string
		difficulty   string
		numQuestions int
		wantErrCount int
	}{
		{"valid watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "easy", 5, 0},
		{"valid bare ID", "dQw4w9WgXcQ", "hard", 3, 0},
		{"valid short URL", "https://youtu.be/dQw4w9WgXcQ", "medium", 10, 0},
		{"missing url", "", "easy", 5, 1},
		{"garbage url", "definitely not a video", "easy", 5, 1},
		{"missing difficulty", "dQw4w9WgXcQ", "", 5, 1},
		{"unknown difficulty", "dQw4w9WgXcQ", "brutal", 5, 1},
		{"count below range", "dQw4w9WgXcQ", "easy", 2, 1},
		{"count above range", "dQw4w9WgXcQ", "easy", 11, 1},
		{"everything wrong", "", "brutal", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateGenerateQuizRequest(tt.videoURL, tt.difficulty, tt.numQuestions)
			assert.Len(t, errs, tt.wantErrCount)
		})
	}
}

func TestValidateSelectAnswerRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSelectAnswerRequest(0, "Paris"))
	assert.Empty(t, v.ValidateSelectAnswerRequest(9, "100C"))

	errs := v.ValidateSelectAnswerRequest(-1, "Paris")
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)

	errs = v.ValidateSelectAnswerRequest(0, "   ")
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateSelectAnswerRequest(0, strings.Repeat("x", 501))
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)
}
