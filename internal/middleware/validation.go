package middleware

import (
	"tubequiz/internal/dto"
	"tubequiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateQuiz validates the quiz generation request body
func (vm *ValidationMiddleware) ValidateGenerateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuizRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if errors := vm.validator.ValidateGenerateQuizRequest(req.VideoURL, req.Difficulty, req.NumQuestions); len(errors) > 0 {
			return errors // Handled by the ErrorHandler middleware
		}

		// Store the validated request in context for the handler to use
		c.Locals("validated_generate_request", &req)
		return c.Next()
	}
}

// ValidateSelectAnswer validates the answer selection request body
func (vm *ValidationMiddleware) ValidateSelectAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.SelectAnswerRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if errors := vm.validator.ValidateSelectAnswerRequest(req.QuestionIndex, req.Answer); len(errors) > 0 {
			return errors
		}

		c.Locals("validated_answer_request", &req)
		return c.Next()
	}
}
