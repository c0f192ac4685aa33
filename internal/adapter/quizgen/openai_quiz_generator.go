package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tubequiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Sampling parameters for quiz generation. Low temperature keeps the output
// close to the requested schema; the token budget covers ten questions.
const (
	generationTemperature      = 0.3
	generationMaxTokens        = 1500
	generationTopP             = 1.0
	generationFrequencyPenalty = 0.0
	generationPresencePenalty  = 0.0
)

// responseSchemaExample is embedded in the prompt; the model must mirror it
// exactly.
const responseSchemaExample = `{
  "mcqs": [
    {
      "mcq": "What is an example question?",
      "options": {
        "a": "Example option 1",
        "b": "Example option 2",
        "c": "Example option 3",
        "d": "Example option 4"
      },
      "correct": "a"
    }
  ]
}`

// textCompleter is the subset of the langchaingo model interface used here.
type textCompleter interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// OpenAIQuizGenerator implements domain.QuizGenerator using an OpenAI chat
// model through langchaingo.
type OpenAIQuizGenerator struct {
	llm    textCompleter
	logger *zap.Logger
}

// NewOpenAIQuizGenerator creates a generator backed by the OpenAI API.
func NewOpenAIQuizGenerator(apiKey, modelName string, logger *zap.Logger) (*OpenAIQuizGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("OpenAI model name cannot be empty")
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	logger.Info("Initialized OpenAI quiz generator", zap.String("model", modelName))
	return &OpenAIQuizGenerator{llm: llm, logger: logger}, nil
}

// NewQuizGeneratorWithModel creates a generator around an existing model
// client. Used by tests and alternative providers.
func NewQuizGeneratorWithModel(llm textCompleter, logger *zap.Logger) *OpenAIQuizGenerator {
	return &OpenAIQuizGenerator{llm: llm, logger: logger}
}

var _ domain.QuizGenerator = (*OpenAIQuizGenerator)(nil)

// Generate invokes the model once and returns the questions that survived
// schema validation. Transport and decoding failures both surface as
// GENERATION_FAILED; no retry is attempted.
func (g *OpenAIQuizGenerator) Generate(ctx context.Context, spec domain.QuizSpec) ([]domain.Question, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	prompt := buildPrompt(spec)
	raw, err := g.llm.Call(ctx, prompt,
		llms.WithTemperature(generationTemperature),
		llms.WithMaxTokens(generationMaxTokens),
		llms.WithTopP(generationTopP),
		llms.WithFrequencyPenalty(generationFrequencyPenalty),
		llms.WithPresencePenalty(generationPresencePenalty),
	)
	if err != nil {
		g.logger.Error("LLM invocation failed", zap.Error(err))
		return nil, domain.NewGenerationFailedError(err)
	}

	questions, err := g.parseQuestions(raw)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Generated quiz questions",
		zap.Int("requested", spec.NumQuestions),
		zap.Int("valid", len(questions)))
	return questions, nil
}

// buildPrompt embeds the transcript, difficulty, count and schema example into
// a single user-role instruction.
func buildPrompt(spec domain.QuizSpec) string {
	return fmt.Sprintf(`Text: %s
You are an expert in generating MCQ type quizzes based on the provided content.
Given the above text, create a quiz of %d multiple-choice questions keeping difficulty level as %s.
Your response must be **strictly valid JSON** matching the schema below:
%s
Do not include any extra text or explanation, only the JSON.`,
		spec.TranscriptText, spec.NumQuestions, spec.Difficulty, responseSchemaExample)
}

// sanitizeResponse trims whitespace and strips a fenced code block by fixed
// offsets: exactly the 7-character "```json" prefix and the 3-character "```"
// suffix when present. Anything else passes through untouched.
func sanitizeResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[7:]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-3]
	}
	return cleaned
}

type mcqPayload struct {
	MCQ     string            `json:"mcq"`
	Options map[string]string `json:"options"`
	Correct string            `json:"correct"`
}

type quizPayload struct {
	MCQs []mcqPayload `json:"mcqs"`
}

// parseQuestions decodes the sanitized model output. A JSON decoding failure
// is GENERATION_FAILED with the offending text logged, never shown to the
// user. A missing "mcqs" key means zero questions, not an error. Records that
// violate the MCQ schema are skipped individually.
func (g *OpenAIQuizGenerator) parseQuestions(raw string) ([]domain.Question, error) {
	cleaned := sanitizeResponse(raw)

	var payload quizPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		g.logger.Error("Failed to decode LLM response",
			zap.Error(err),
			zap.String("raw_response", raw))
		return nil, domain.NewGenerationFailedError(err)
	}

	questions := make([]domain.Question, 0, len(payload.MCQs))
	for i, mcq := range payload.MCQs {
		q := domain.Question{
			Text:    mcq.MCQ,
			Options: mcq.Options,
			Correct: mcq.Correct,
		}
		if err := q.Validate(); err != nil {
			g.logger.Warn("Skipping question that failed schema validation",
				zap.Int("index", i),
				zap.String("correct_label", mcq.Correct),
				zap.Error(err))
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}
