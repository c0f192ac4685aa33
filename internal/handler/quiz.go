package handler

import (
	"time"

	"tubequiz/internal/dto"
	"tubequiz/internal/logger"
	"tubequiz/internal/service"
	"tubequiz/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the quiz session ID.
const SessionCookieName = "quiz_session"

const sessionCookieMaxAge = 24 * time.Hour

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// sessionID returns the caller's session ID, issuing a new one on first use.
func (h *QuizHandler) sessionID(c *fiber.Ctx) string {
	id := c.Cookies(SessionCookieName)
	if id == "" {
		id = util.NewULID()
		logger.Get().Debug("Issued new quiz session", zap.String("session_id", id))
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
	})
	return id
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a video
// @Description Fetches the video transcript and generates multiple-choice questions, replacing any prior quiz in the session
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation parameters"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, ok := c.Locals("validated_generate_request").(*dto.GenerateQuizRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), h.sessionID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SelectAnswer godoc
// @Summary Select an answer for a question
// @Description Records the chosen answer text for one question of the active quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SelectAnswerRequest true "Answer selection"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/answer [post]
func (h *QuizHandler) SelectAnswer(c *fiber.Ctx) error {
	req, ok := c.Locals("validated_answer_request").(*dto.SelectAnswerRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.service.SelectAnswer(c.UserContext(), h.sessionID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitQuiz godoc
// @Summary Submit the active quiz
// @Description Locks the quiz and returns the scored result
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	resp, err := h.service.SubmitQuiz(c.UserContext(), h.sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSession godoc
// @Summary Get the current quiz session
// @Description Returns the session snapshot: questions, selections, and the result once submitted
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizSessionResponse
// @Router /quiz/session [get]
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.service.GetSession(c.UserContext(), h.sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
