package interview

import (
	"testing"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

func TestIsRepeat(t *testing.T) {
	past := []string{Normalize("Use a hash map."), Normalize("  Two pointers  ")}

	if !IsRepeat(Normalize("USE A HASH MAP."), past) {
		t.Fatal("expected case-insensitive match")
	}
	if !IsRepeat(Normalize("\ttwo pointers\n"), past) {
		t.Fatal("expected whitespace-trimmed match")
	}
	if IsRepeat(Normalize("Use a hashmap."), past) {
		t.Fatal("paraphrase must not match")
	}
	if IsRepeat(Normalize("anything"), nil) {
		t.Fatal("no past answers cannot match")
	}
}

func TestPastAnswersExcludesLatest(t *testing.T) {
	s := &State{Messages: []models.Message{
		{Role: models.RoleInterviewer, Content: "Q1"},
		{Role: models.RoleCandidate, Content: " First Answer "},
		{Role: models.RoleEvaluator, Content: "Score: 50"},
		{Role: models.RoleInterviewer, Content: "Q2"},
		{Role: models.RoleCandidate, Content: "Second"},
	}}

	got := s.pastAnswers()
	if len(got) != 1 || got[0] != "first answer" {
		t.Fatalf("unexpected past answers %v", got)
	}

	if (&State{}).pastAnswers() != nil {
		t.Fatal("expected nil for empty log")
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	s := &State{
		Messages:        []models.Message{{Role: models.RoleInterviewer, Content: "Q1"}},
		SeenQuestionIDs: []string{"q1"},
		Scores:          []int{80},
	}
	cp := s.Clone()
	cp.Messages[0].Content = "changed"
	cp.SeenQuestionIDs[0] = "changed"
	cp.Scores[0] = 1
	cp.Messages = append(cp.Messages, models.Message{Role: models.RoleCandidate, Content: "A"})

	if s.Messages[0].Content != "Q1" || s.SeenQuestionIDs[0] != "q1" || s.Scores[0] != 80 || len(s.Messages) != 1 {
		t.Fatalf("clone shares memory with original: %+v", s)
	}
}

func TestAverageScore(t *testing.T) {
	if _, ok := (&State{}).AverageScore(); ok {
		t.Fatal("expected no average before any evaluation")
	}
	avg, ok := (&State{Scores: []int{85, 30, 70}}).AverageScore()
	if !ok || avg != 185.0/3 {
		t.Fatalf("unexpected average %v", avg)
	}
}
