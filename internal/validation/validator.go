package validation

import (
	"regexp"
	"strings"

	"tubequiz/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

const maxAnswerLength = 500

var videoRefPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidateGenerateQuizRequest validates the quiz generation request
func (v *Validator) ValidateGenerateQuizRequest(videoURL, difficulty string, numQuestions int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(videoURL) == "" {
		errors = append(errors, domain.NewMissingFieldError("video_url"))
	} else if !isPlausibleVideoRef(videoURL) {
		errors = append(errors, domain.NewInvalidFormatError("video_url", videoURL))
	}

	if strings.TrimSpace(difficulty) == "" {
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	} else if _, err := domain.ParseDifficulty(difficulty); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
	}

	if numQuestions < domain.MinQuestionCount || numQuestions > domain.MaxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions,
			domain.MinQuestionCount, domain.MaxQuestionCount))
	}

	return errors
}

// ValidateSelectAnswerRequest validates the answer selection request
func (v *Validator) ValidateSelectAnswerRequest(questionIndex int, answer string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if questionIndex < 0 {
		errors = append(errors, domain.NewOutOfRangeError("question_index", questionIndex, 0, domain.MaxQuestionCount-1))
	}

	if strings.TrimSpace(answer) == "" {
		errors = append(errors, domain.NewMissingFieldError("answer"))
	} else if len(answer) > maxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(answer), 1, maxAnswerLength))
	}

	return errors
}

// isPlausibleVideoRef accepts a bare video ID or a YouTube URL. Full
// resolution happens in the transcript fetcher; this only rejects obvious
// garbage early.
func isPlausibleVideoRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	if videoRefPattern.MatchString(ref) {
		return true
	}
	return strings.Contains(ref, "youtube.com/") || strings.Contains(ref, "youtu.be/")
}
