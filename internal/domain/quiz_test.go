package domain

import (
	"testing"
)

func sampleQuestions() []Question {
	return []Question{
		{
			Text:    "What is the boiling point of water at sea level?",
			Options: map[string]string{"a": "90C", "b": "100C", "c": "110C", "d": "120C"},
			Correct: "b",
		},
		{
			Text:    "Which planet is closest to the sun?",
			Options: map[string]string{"a": "Mercury", "b": "Venus", "c": "Earth", "d": "Mars"},
			Correct: "a",
		},
		{
			Text:    "What gas do plants absorb?",
			Options: map[string]string{"a": "Oxygen", "b": "Nitrogen", "c": "Carbon dioxide", "d": "Helium"},
			Correct: "c",
		},
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  bool
	}{
		{
			"valid question",
			Question{
				Text:    "Q?",
				Options: map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"},
				Correct: "a",
			},
			false,
		},
		{
			"correct label not in options",
			Question{
				Text:    "Q?",
				Options: map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"},
				Correct: "e",
			},
			true,
		},
		{
			"missing correct label",
			Question{
				Text:    "Q?",
				Options: map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"},
			},
			true,
		},
		{
			"too few options",
			Question{
				Text:    "Q?",
				Options: map[string]string{"a": "1", "b": "2"},
				Correct: "a",
			},
			true,
		},
		{
			"empty text",
			Question{
				Options: map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"},
				Correct: "a",
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestion_OptionLabels(t *testing.T) {
	q := Question{
		Text:    "Q?",
		Options: map[string]string{"d": "4", "b": "2", "a": "1", "c": "3"},
		Correct: "a",
	}
	labels := q.OptionLabels()
	want := []string{"a", "b", "c", "d"}
	for i, label := range labels {
		if label != want[i] {
			t.Fatalf("OptionLabels() = %v, want %v", labels, want)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"Medium", DifficultyMedium, false},
		{" HARD ", DifficultyHard, false},
		{"extreme", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestQuizSpec_Validate(t *testing.T) {
	valid := QuizSpec{TranscriptText: "some transcript", Difficulty: DifficultyEasy, NumQuestions: 5}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}

	empty := valid
	empty.TranscriptText = "   "
	if err := empty.Validate(); err == nil {
		t.Error("expected error for empty transcript")
	}

	tooFew := valid
	tooFew.NumQuestions = 2
	if err := tooFew.Validate(); err == nil {
		t.Error("expected error for count below minimum")
	}

	tooMany := valid
	tooMany.NumQuestions = 11
	if err := tooMany.Validate(); err == nil {
		t.Error("expected error for count above maximum")
	}
}

func TestQuizSession_StateTransitions(t *testing.T) {
	s := NewQuizSession("01HTEST00000000000000000000")

	if s.State() != StateEmpty {
		t.Fatalf("new session state = %s, want %s", s.State(), StateEmpty)
	}

	// Submitting or answering with no questions is a disallowed transition.
	if err := s.Submit(); err == nil {
		t.Error("expected submit on empty session to fail")
	}
	if err := s.SelectAnswer(0, "100C"); err == nil {
		t.Error("expected answer on empty session to fail")
	}

	s.SetQuestions(sampleQuestions())
	if s.State() != StateGenerated {
		t.Fatalf("state after SetQuestions = %s, want %s", s.State(), StateGenerated)
	}
	if len(s.SelectedAnswers) != 3 {
		t.Fatalf("expected 3 answer slots, got %d", len(s.SelectedAnswers))
	}

	if err := s.SelectAnswer(0, "100C"); err != nil {
		t.Fatalf("SelectAnswer failed: %v", err)
	}
	if s.State() != StateAnswering {
		t.Errorf("state after answering = %s, want %s", s.State(), StateAnswering)
	}

	// Re-selecting overwrites the slot.
	if err := s.SelectAnswer(0, "90C"); err != nil {
		t.Fatalf("SelectAnswer overwrite failed: %v", err)
	}
	if s.SelectedAnswers[0] != "90C" {
		t.Errorf("slot 0 = %q, want overwrite to %q", s.SelectedAnswers[0], "90C")
	}

	if err := s.SelectAnswer(3, "x"); err == nil {
		t.Error("expected out-of-range index to fail")
	}

	if err := s.Submit(); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if s.State() != StateSubmitted {
		t.Errorf("state after submit = %s, want %s", s.State(), StateSubmitted)
	}

	// No edits or re-submission after submit.
	if err := s.SelectAnswer(1, "Mercury"); err == nil {
		t.Error("expected answer after submit to fail")
	}
	if err := s.Submit(); err == nil {
		t.Error("expected second submit to fail")
	}
}

func TestQuizSession_Scoring(t *testing.T) {
	s := NewQuizSession("01HTEST00000000000000000000")
	s.SetQuestions(sampleQuestions())

	// Two correct (by answer text), one wrong.
	if err := s.SelectAnswer(0, "100C"); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectAnswer(1, "Venus"); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectAnswer(2, "Carbon dioxide"); err != nil {
		t.Fatal(err)
	}

	correct, total := s.Score()
	if correct != 2 || total != 3 {
		t.Errorf("Score() = %d/%d, want 2/3", correct, total)
	}
	if s.ScoreString() != "2/3" {
		t.Errorf("ScoreString() = %q, want %q", s.ScoreString(), "2/3")
	}
}

func TestQuizSession_Regenerate_FullReplace(t *testing.T) {
	s := NewQuizSession("01HTEST00000000000000000000")
	s.SetQuestions(sampleQuestions())
	if err := s.SelectAnswer(0, "100C"); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(); err != nil {
		t.Fatal(err)
	}

	replacement := sampleQuestions()[:2]
	s.SetQuestions(replacement)

	if s.Submitted {
		t.Error("submitted flag must reset on regeneration")
	}
	if len(s.Questions) != 2 {
		t.Errorf("questions not replaced, len = %d", len(s.Questions))
	}
	for i, answer := range s.SelectedAnswers {
		if answer != "" {
			t.Errorf("answer slot %d not reset: %q", i, answer)
		}
	}
	if s.State() != StateGenerated {
		t.Errorf("state after regeneration = %s, want %s", s.State(), StateGenerated)
	}
}

func TestQuizSession_UnansweredCountsAsIncorrect(t *testing.T) {
	s := NewQuizSession("01HTEST00000000000000000000")
	s.SetQuestions(sampleQuestions())
	if err := s.SelectAnswer(1, "Mercury"); err != nil {
		t.Fatal(err)
	}
	correct, total := s.Score()
	if correct != 1 || total != 3 {
		t.Errorf("Score() = %d/%d, want 1/3", correct, total)
	}
}
