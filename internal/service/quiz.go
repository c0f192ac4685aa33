package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"tubequiz/internal/cache"
	"tubequiz/internal/config"
	"tubequiz/internal/domain"
	"tubequiz/internal/dto"
	"tubequiz/internal/logger"
	"tubequiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService orchestrates transcript fetching, quiz generation and session
// state across stateless requests.
type QuizService interface {
	// GenerateQuiz fetches the transcript, generates questions and replaces
	// the session's quiz wholesale. On failure the session is reset to empty.
	GenerateQuiz(ctx context.Context, sessionID string, req *dto.GenerateQuizRequest) (*dto.QuizSessionResponse, error)

	// SelectAnswer records the answer text for one question.
	SelectAnswer(ctx context.Context, sessionID string, req *dto.SelectAnswerRequest) (*dto.QuizSessionResponse, error)

	// SubmitQuiz flips the session to submitted and returns the scored result.
	SubmitQuiz(ctx context.Context, sessionID string) (*dto.QuizSessionResponse, error)

	// GetSession returns the current session snapshot for rendering.
	GetSession(ctx context.Context, sessionID string) (*dto.QuizSessionResponse, error)
}

type quizService struct {
	fetcher   domain.TranscriptFetcher
	generator domain.QuizGenerator
	sessions  domain.SessionRepository
	cache     domain.Cache
	cfg       *config.Config
	sfGroup   singleflight.Group
}

// NewQuizService creates a new QuizService instance.
func NewQuizService(
	fetcher domain.TranscriptFetcher,
	generator domain.QuizGenerator,
	sessions domain.SessionRepository,
	cacheAdapter domain.Cache,
	cfg *config.Config,
) QuizService {
	return &quizService{
		fetcher:   fetcher,
		generator: generator,
		sessions:  sessions,
		cache:     cacheAdapter,
		cfg:       cfg,
	}
}

func (s *quizService) GenerateQuiz(ctx context.Context, sessionID string, req *dto.GenerateQuizRequest) (*dto.QuizSessionResponse, error) {
	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}

	session := s.loadOrCreateSession(ctx, sessionID)

	transcript, err := s.fetchTranscript(ctx, req.VideoURL)
	if err != nil {
		s.resetSession(ctx, session)
		return nil, err
	}

	spec := domain.QuizSpec{
		TranscriptText: transcript,
		Difficulty:     difficulty,
		NumQuestions:   req.NumQuestions,
	}

	questions, err := s.generateQuestions(ctx, spec)
	if err != nil {
		s.resetSession(ctx, session)
		return nil, err
	}
	if len(questions) == 0 {
		// The model produced parseable output with no usable questions.
		s.resetSession(ctx, session)
		return nil, domain.NewGenerationFailedError(nil)
	}

	session.SetQuestions(questions)
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz generated",
		zap.String("session_id", sessionID),
		zap.String("difficulty", string(difficulty)),
		zap.Int("questions", len(questions)))
	return toSessionResponse(session), nil
}

func (s *quizService) SelectAnswer(ctx context.Context, sessionID string, req *dto.SelectAnswerRequest) (*dto.QuizSessionResponse, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.SelectAnswer(req.QuestionIndex, req.Answer); err != nil {
		return nil, err
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *quizService) SubmitQuiz(ctx context.Context, sessionID string) (*dto.QuizSessionResponse, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Submit(); err != nil {
		return nil, err
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	correct, total := session.Score()
	logger.Get().Info("Quiz submitted",
		zap.String("session_id", sessionID),
		zap.Int("correct", correct),
		zap.Int("total", total))
	return toSessionResponse(session), nil
}

func (s *quizService) GetSession(ctx context.Context, sessionID string) (*dto.QuizSessionResponse, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		var domainErr *domain.DomainError
		// An unknown or expired session renders as an empty one.
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeSessionNotFound {
			return toSessionResponse(domain.NewQuizSession(sessionID)), nil
		}
		return nil, err
	}
	return toSessionResponse(session), nil
}

// fetchTranscript memoizes transcript retrieval keyed by the exact video
// reference, so re-generating for the same video skips the outbound call.
func (s *quizService) fetchTranscript(ctx context.Context, videoRef string) (string, error) {
	key := cache.GenerateCacheKey("transcript", "youtube", util.HashString(videoRef))

	if cached, err := s.cache.Get(ctx, key); err == nil {
		logger.Get().Debug("Transcript cache hit", zap.String("key", key))
		return cached, nil
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Transcript cache lookup failed", zap.Error(err), zap.String("key", key))
	}

	transcript, err := s.fetcher.Fetch(ctx, videoRef)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, transcript, s.cfg.CacheTTLs.Transcript); err != nil {
		logger.Get().Warn("Failed to cache transcript", zap.Error(err), zap.String("key", key))
	}
	return transcript, nil
}

// generateQuestions memoizes generation keyed by the request tuple
// (transcript, difficulty, count). Concurrent identical requests collapse
// into one model call via singleflight.
func (s *quizService) generateQuestions(ctx context.Context, spec domain.QuizSpec) ([]domain.Question, error) {
	key := cache.GenerateCacheKey("quizgen", "mcqs",
		util.HashString(spec.TranscriptText),
		string(spec.Difficulty), strconv.Itoa(spec.NumQuestions))

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var questions []domain.Question
		if errDecode := json.Unmarshal([]byte(cached), &questions); errDecode == nil {
			logger.Get().Debug("Generation cache hit", zap.String("key", key))
			return questions, nil
		}
		logger.Get().Warn("Failed to decode cached questions", zap.String("key", key))
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Generation cache lookup failed", zap.Error(err), zap.String("key", key))
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		questions, genErr := s.generator.Generate(ctx, spec)
		if genErr != nil {
			return nil, genErr
		}

		if len(questions) > 0 {
			if data, errEncode := json.Marshal(questions); errEncode == nil {
				if errSet := s.cache.Set(ctx, key, string(data), s.cfg.CacheTTLs.Generation); errSet != nil {
					logger.Get().Warn("Failed to cache generated questions", zap.Error(errSet), zap.String("key", key))
				}
			}
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Question), nil
}

func (s *quizService) loadOrCreateSession(ctx context.Context, sessionID string) *domain.QuizSession {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return domain.NewQuizSession(sessionID)
	}
	return session
}

// resetSession clears the session to empty after a failed generation; prior
// questions are not kept around.
func (s *quizService) resetSession(ctx context.Context, session *domain.QuizSession) {
	session.Reset()
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		logger.Get().Warn("Failed to persist session reset",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}
}

func toSessionResponse(session *domain.QuizSession) *dto.QuizSessionResponse {
	resp := &dto.QuizSessionResponse{
		SessionID: session.ID,
		State:     string(session.State()),
		Questions: make([]dto.QuestionResponse, 0, len(session.Questions)),
		Submitted: session.Submitted,
	}

	for i, q := range session.Questions {
		options := make([]dto.OptionResponse, 0, len(q.Options))
		for _, label := range q.OptionLabels() {
			options = append(options, dto.OptionResponse{Label: label, Text: q.Options[label]})
		}
		selected := ""
		if i < len(session.SelectedAnswers) {
			selected = session.SelectedAnswers[i]
		}
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			Index:          i,
			Question:       q.Text,
			Options:        options,
			SelectedAnswer: selected,
		})
	}

	if session.Submitted {
		correct, total := session.Score()
		result := &dto.QuizResultResponse{
			CorrectCount: correct,
			TotalCount:   total,
			Score:        session.ScoreString(),
			Questions:    make([]dto.QuestionResultResponse, 0, len(session.Questions)),
		}
		for i, q := range session.Questions {
			selected := ""
			if i < len(session.SelectedAnswers) {
				selected = session.SelectedAnswers[i]
			}
			result.Questions = append(result.Questions, dto.QuestionResultResponse{
				Question:       q.Text,
				SelectedAnswer: selected,
				CorrectAnswer:  q.CorrectAnswer(),
				Correct:        selected != "" && selected == q.CorrectAnswer(),
			})
		}
		resp.Result = result
	}

	return resp
}
