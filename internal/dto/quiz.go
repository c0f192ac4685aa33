package dto

// GenerateQuizRequest is the request body for generating a new quiz.
// @Description Parameters for quiz generation
type GenerateQuizRequest struct {
	VideoURL     string `json:"video_url"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
}

// OptionResponse is a single answer option, label plus text, in stable order.
type OptionResponse struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// QuestionResponse represents one question in the API response. The correct
// label is never exposed before submission.
type QuestionResponse struct {
	Index          int              `json:"index"`
	Question       string           `json:"question"`
	Options        []OptionResponse `json:"options"`
	SelectedAnswer string           `json:"selected_answer,omitempty"`
}

// SelectAnswerRequest is the request body for answering one question.
// @Description Answer selection for a single question
type SelectAnswerRequest struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
}

// QuestionResultResponse is the per-question breakdown after submission.
type QuestionResultResponse struct {
	Question       string `json:"question"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	Correct        bool   `json:"correct"`
}

// QuizResultResponse is the scored outcome of a submitted quiz.
type QuizResultResponse struct {
	CorrectCount int                      `json:"correct_count"`
	TotalCount   int                      `json:"total_count"`
	Score        string                   `json:"score"`
	Questions    []QuestionResultResponse `json:"questions"`
}

// QuizSessionResponse is the full session snapshot for rendering.
// @Description Current quiz session state
type QuizSessionResponse struct {
	SessionID string              `json:"session_id"`
	State     string              `json:"state"`
	Questions []QuestionResponse  `json:"questions"`
	Submitted bool                `json:"submitted"`
	Result    *QuizResultResponse `json:"result,omitempty"`
}
