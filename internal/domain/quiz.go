package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Difficulty is the requested quiz difficulty. It only influences prompt
// phrasing; nothing downstream enforces it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes a difficulty label. Unknown labels are rejected.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", NewError(CodeInvalidFormat, fmt.Sprintf("invalid difficulty: %s", s), nil)
	}
}

const (
	MinQuestionCount = 3
	MaxQuestionCount = 10
	OptionCount      = 4
)

// QuizSpec holds the parameters of one generation request.
type QuizSpec struct {
	TranscriptText string
	Difficulty     Difficulty
	NumQuestions   int
}

// Validate validates the quiz spec
func (s *QuizSpec) Validate() error {
	if strings.TrimSpace(s.TranscriptText) == "" {
		return NewError(CodeValidation, "transcript text is required", nil)
	}
	if _, err := ParseDifficulty(string(s.Difficulty)); err != nil {
		return err
	}
	if s.NumQuestions < MinQuestionCount || s.NumQuestions > MaxQuestionCount {
		return NewError(CodeValidation,
			fmt.Sprintf("number of questions must be between %d and %d", MinQuestionCount, MaxQuestionCount), nil)
	}
	return nil
}

// Question is a single multiple-choice question. Options maps a single-letter
// label to the answer text; Correct identifies the winning label.
type Question struct {
	Text    string            `json:"text"`
	Options map[string]string `json:"options"`
	Correct string            `json:"correct"`
}

// Validate validates the question against the MCQ schema: exactly four
// options, and the correct label must exist in the option set.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewError(CodeSchemaInvalid, "question text is required", nil)
	}
	if len(q.Options) != OptionCount {
		return NewError(CodeSchemaInvalid,
			fmt.Sprintf("question must have exactly %d options, got %d", OptionCount, len(q.Options)), nil)
	}
	if q.Correct == "" {
		return NewError(CodeSchemaInvalid, "correct label is required", nil)
	}
	if _, ok := q.Options[q.Correct]; !ok {
		return NewError(CodeSchemaInvalid,
			fmt.Sprintf("correct label %q is not an option key", q.Correct), nil)
	}
	return nil
}

// OptionLabels returns the option labels in sorted order so rendering is
// stable across requests.
func (q *Question) OptionLabels() []string {
	labels := make([]string, 0, len(q.Options))
	for label := range q.Options {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// CorrectAnswer returns the answer text of the correct option.
func (q *Question) CorrectAnswer() string {
	return q.Options[q.Correct]
}

// SessionState is the derived lifecycle state of a QuizSession.
type SessionState string

const (
	StateEmpty     SessionState = "empty"
	StateGenerated SessionState = "generated"
	StateAnswering SessionState = "answering"
	StateSubmitted SessionState = "submitted"
)

// QuizSession holds one user's active quiz: the generated questions, the
// answer text selected per question (empty string = unset), and whether the
// quiz has been submitted. The state label is derived, never stored.
type QuizSession struct {
	ID              string     `json:"id"`
	Questions       []Question `json:"questions"`
	SelectedAnswers []string   `json:"selected_answers"`
	Submitted       bool       `json:"submitted"`
}

// NewQuizSession creates an empty session.
func NewQuizSession(id string) *QuizSession {
	return &QuizSession{ID: id}
}

// State derives the lifecycle state from the session's fields.
func (s *QuizSession) State() SessionState {
	if len(s.Questions) == 0 {
		return StateEmpty
	}
	if s.Submitted {
		return StateSubmitted
	}
	for _, answer := range s.SelectedAnswers {
		if answer != "" {
			return StateAnswering
		}
	}
	return StateGenerated
}

// SetQuestions replaces the session's quiz wholesale: prior answers and the
// submitted flag are discarded, never merged.
func (s *QuizSession) SetQuestions(questions []Question) {
	s.Questions = questions
	s.SelectedAnswers = make([]string, len(questions))
	s.Submitted = false
}

// Reset clears the session back to the empty state.
func (s *QuizSession) Reset() {
	s.Questions = nil
	s.SelectedAnswers = nil
	s.Submitted = false
}

// SelectAnswer stores the answer text for question i, overwriting any prior
// selection for that slot. Selection is rejected once submitted; editing
// requires a fresh generation.
func (s *QuizSession) SelectAnswer(i int, answerText string) error {
	if len(s.Questions) == 0 {
		return NewInvalidTransitionError("no quiz has been generated")
	}
	if s.Submitted {
		return NewInvalidTransitionError("quiz already submitted; generate a new quiz to answer again")
	}
	if i < 0 || i >= len(s.Questions) {
		return NewError(CodeValidation,
			fmt.Sprintf("question index %d out of range [0,%d)", i, len(s.Questions)), nil)
	}
	s.SelectedAnswers[i] = answerText
	return nil
}

// Submit flips the submitted flag. Valid only when questions exist and the
// quiz has not already been submitted.
func (s *QuizSession) Submit() error {
	if len(s.Questions) == 0 {
		return NewInvalidTransitionError("cannot submit: no quiz has been generated")
	}
	if s.Submitted {
		return NewInvalidTransitionError("quiz already submitted")
	}
	s.Submitted = true
	return nil
}

// Score counts questions whose selected answer text equals the text of the
// correct option. It is derived on demand, not stored.
func (s *QuizSession) Score() (correct int, total int) {
	total = len(s.Questions)
	for i, q := range s.Questions {
		if i < len(s.SelectedAnswers) && s.SelectedAnswers[i] != "" && s.SelectedAnswers[i] == q.CorrectAnswer() {
			correct++
		}
	}
	return correct, total
}

// ScoreString renders the score in "correct/total" form, e.g. "3/5".
func (s *QuizSession) ScoreString() string {
	correct, total := s.Score()
	return fmt.Sprintf("%d/%d", correct, total)
}
