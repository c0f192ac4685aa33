package domain

import "context"

// TranscriptFetcher resolves a video reference to its plain-text transcript.
type TranscriptFetcher interface {
	// Fetch returns the transcript text for the referenced video.
	// It never returns an empty transcript together with a nil error: a video
	// without a usable transcript yields a TRANSCRIPT_UNAVAILABLE error.
	Fetch(ctx context.Context, videoRef string) (string, error)
}

// QuizGenerator produces multiple-choice questions from a transcript.
type QuizGenerator interface {
	// Generate invokes the text model once and returns the questions that
	// survived schema validation. A transport or decoding failure yields a
	// GENERATION_FAILED error and no questions; no retry is attempted.
	Generate(ctx context.Context, spec QuizSpec) ([]Question, error)
}

// SessionRepository persists QuizSession state between stateless requests.
type SessionRepository interface {
	// GetSession loads a session by ID, returning SESSION_NOT_FOUND when the
	// session does not exist or has expired.
	GetSession(ctx context.Context, sessionID string) (*QuizSession, error)

	// SaveSession stores the session, refreshing its TTL.
	SaveSession(ctx context.Context, session *QuizSession) error

	// DeleteSession removes the session. Missing sessions are not an error.
	DeleteSession(ctx context.Context, sessionID string) error
}
