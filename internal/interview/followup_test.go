package interview

import (
	"context"
	"testing"

	"github.com/Maazpendari01/InterviewQi/internal/models"
	"github.com/Maazpendari01/InterviewQi/internal/prompts"
)

// followUpRetriever serves coding_q1 to start and ground the interview and
// returns candidates for the follow-up search
func followUpRetriever(candidates ...models.Exemplar) *mockRetriever {
	return &mockRetriever{searchFunc: func(_ context.Context, _, _ string, k int) ([]models.Exemplar, error) {
		if k == followUpSearchK {
			return candidates, nil
		}
		return []models.Exemplar{reverseList}, nil
	}}
}

func followUpSearch(t *testing.T, r *mockRetriever) searchCall {
	t.Helper()
	for _, call := range r.calls {
		if call.k == followUpSearchK {
			return call
		}
	}
	t.Fatalf("no follow-up search in %+v", r.calls)
	return searchCall{}
}

func TestBandForScore(t *testing.T) {
	cases := []struct {
		score int
		band  Band
	}{
		{0, BandFoundational},
		{59, BandFoundational},
		{60, BandClarifying},
		{79, BandClarifying},
		{80, BandOptimization},
		{89, BandOptimization},
		{90, BandSystemDesign},
		{100, BandSystemDesign},
	}

	for _, tc := range cases {
		if got := BandForScore(tc.score); got != tc.band {
			t.Fatalf("BandForScore(%d) = %s, want %s", tc.score, got, tc.band)
		}
	}
}

func TestBandTarget(t *testing.T) {
	cases := []struct {
		band       Band
		category   string
		difficulty string
	}{
		{BandFoundational, "behavioral", "easy"},
		{BandClarifying, "behavioral", "medium"},
		{BandOptimization, "behavioral", "hard"},
		{BandSystemDesign, models.CategorySystemDesign, "hard"},
	}

	for _, tc := range cases {
		category, difficulty := tc.band.target("behavioral")
		if category != tc.category || difficulty != tc.difficulty {
			t.Fatalf("%s target = (%s, %s), want (%s, %s)", tc.band, category, difficulty, tc.category, tc.difficulty)
		}
	}
}

func TestCleanQuestion(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "What is a heap?", "What is a heap?"},
		{"leading blank lines", "\n  \n\tWhat is a heap?\nWhy?", "What is a heap?"},
		{"straight quotes", "\"What is a heap?\"", "What is a heap?"},
		{"curly quotes", "“What is a heap?”", "What is a heap?"},
		{"quotes around padding", "‘  What is a heap?  ’", "What is a heap?"},
		{"only whitespace", " \n\t\n ", ""},
		{"only quotes", "\"\"\n``", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanQuestion(tc.input); got != tc.want {
				t.Fatalf("CleanQuestion(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestPickUnseen(t *testing.T) {
	state := &State{
		CurrentQuestion:   "Reverse a singly linked list.",
		CurrentQuestionID: "coding_q1",
		SeenQuestionIDs:   []string{"coding_q0", "coding_q1"},
	}
	candidates := []models.Exemplar{
		exemplar("coding_q1", "coding", "easy", "Reverse a singly linked list."),
		exemplar("coding_q0", "coding", "easy", "Two sum."),
		exemplar("coding_q9", "coding", "easy", "Reverse a singly linked list."),
		exemplar("coding_q5", "coding", "hard", "LRU cache."),
		exemplar("coding_q6", "coding", "easy", "Find the middle node."),
	}

	cases := []struct {
		difficulty string
		want       string
	}{
		{"easy", "coding_q6"},
		{"hard", "coding_q5"},
		{"medium", "coding_q5"},
		{"", "coding_q5"},
	}
	for _, tc := range cases {
		ex, ok := pickUnseen(state, candidates, tc.difficulty)
		if !ok || ex.Metadata.ID != tc.want {
			t.Fatalf("pickUnseen(%q) = %s (%v), want %s", tc.difficulty, ex.Metadata.ID, ok, tc.want)
		}
	}

	if _, ok := pickUnseen(state, candidates[:3], "easy"); ok {
		t.Fatal("expected nothing unseen")
	}
}

func TestFollowUpGeneratedPerBand(t *testing.T) {
	cases := []struct {
		name       string
		evaluation string
		band       Band
		category   string
	}{
		{"foundational", "Score: 40/100", BandFoundational, "coding"},
		{"clarifying", "Score: 60/100", BandClarifying, "coding"},
		{"optimization", "Score: 89/100", BandOptimization, "coding"},
		{"system design twist", "Score: 90/100", BandSystemDesign, models.CategorySystemDesign},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			retriever := followUpRetriever(reverseList)
			pm := &mockPrompts{}
			c := NewController(retriever, stageCompleter(tc.evaluation, "What would you change first?"), pm, nil)
			state := startCoding(t, c)

			result, err := c.SubmitAnswer(context.Background(), state, linkedListAnswer)
			if err != nil {
				t.Fatalf("SubmitAnswer returned error: %v", err)
			}

			want := searchCall{query: reverseList.Metadata.Question, category: tc.category, k: followUpSearchK}
			if got := followUpSearch(t, retriever); got != want {
				t.Fatalf("follow-up search = %+v, want %+v", got, want)
			}
			if call, ok := pm.lastFor(prompts.ModeFollowUp); !ok || call.variant != string(tc.band) {
				t.Fatalf("expected %s follow-up prompt, got %+v", tc.band, call)
			}
			if result.FollowUpBand != tc.band || result.NextQuestionID != "coding_q1_f" {
				t.Fatalf("unexpected follow-up %+v", result)
			}
			if state.CurrentQuestion != "What would you change first?" || state.CurrentQuestionID != "coding_q1_f" {
				t.Fatalf("follow-up not committed: %+v", state)
			}
		})
	}
}

func TestFollowUpUsesRetrievedExemplar(t *testing.T) {
	cases := []struct {
		name       string
		evaluation string
		candidates []models.Exemplar
		category   string
		wantID     string
	}{
		{
			name:       "preferred difficulty wins",
			evaluation: "Score: 40/100",
			candidates: []models.Exemplar{
				reverseList,
				exemplar("coding_q7", "coding", "medium", "Merge two sorted lists."),
				exemplar("coding_q8", "coding", "easy", "Find the middle node."),
			},
			category: "coding",
			wantID:   "coding_q8",
		},
		{
			name:       "any unseen difficulty",
			evaluation: "Score: 40/100",
			candidates: []models.Exemplar{
				reverseList,
				exemplar("coding_q7", "coding", "medium", "Merge two sorted lists."),
			},
			category: "coding",
			wantID:   "coding_q7",
		},
		{
			name:       "system design twist",
			evaluation: "Score: 95/100",
			candidates: []models.Exemplar{
				exemplar("system_design_q2", models.CategorySystemDesign, "hard", "Design a URL shortener."),
			},
			category: models.CategorySystemDesign,
			wantID:   "system_design_q2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			retriever := followUpRetriever(tc.candidates...)
			completer := &mockCompleter{generateFunc: respond(tc.evaluation)}
			pm := &mockPrompts{}
			c := NewController(retriever, completer, pm, nil)
			state := startCoding(t, c)

			result, err := c.SubmitAnswer(context.Background(), state, linkedListAnswer)
			if err != nil {
				t.Fatalf("SubmitAnswer returned error: %v", err)
			}

			if got := followUpSearch(t, retriever); got.category != tc.category || got.k != followUpSearchK {
				t.Fatalf("unexpected follow-up search %+v", got)
			}
			if _, ok := pm.lastFor(prompts.ModeFollowUp); ok {
				t.Fatal("retrieved follow-up must not build a generation prompt")
			}
			if len(completer.prompts) != 1 {
				t.Fatalf("expected only the evaluation completion, got %d calls", len(completer.prompts))
			}
			if result.NextQuestionID != tc.wantID || state.CurrentQuestionID != tc.wantID {
				t.Fatalf("next question id = %s, want %s", result.NextQuestionID, tc.wantID)
			}
			if state.SeenQuestionIDs[len(state.SeenQuestionIDs)-1] != tc.wantID {
				t.Fatalf("retrieved id not recorded as seen: %v", state.SeenQuestionIDs)
			}
		})
	}
}

func TestFollowUpFallbackQuestion(t *testing.T) {
	cases := []struct {
		name       string
		evaluation string
		generated  string
		want       string
	}{
		{"whitespace only", "Score: 55/100", " \n\t\n", fallbackQuestions[BandFoundational]},
		{"quotes only", "Score: 85/100", "“”", fallbackQuestions[BandOptimization]},
		{"same as current question", "Score: 75/100", "“Reverse a singly linked list.”", fallbackQuestions[BandClarifying]},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController(followUpRetriever(reverseList), stageCompleter(tc.evaluation, tc.generated), &mockPrompts{}, nil)
			state := startCoding(t, c)

			result, err := c.SubmitAnswer(context.Background(), state, linkedListAnswer)
			if err != nil {
				t.Fatalf("SubmitAnswer returned error: %v", err)
			}
			if result.NextQuestion != tc.want || result.NextQuestionID != "coding_q1_f" {
				t.Fatalf("unexpected fallback %q (%s)", result.NextQuestion, result.NextQuestionID)
			}
			if state.CurrentQuestion == reverseList.Metadata.Question {
				t.Fatal("question id changed without the question changing")
			}
		})
	}
}

func TestFollowUpFallbackDiffersFromCurrent(t *testing.T) {
	canned := fallbackQuestions[BandClarifying]
	c := NewController(followUpRetriever(), stageCompleter("Score: 70/100", canned), &mockPrompts{}, nil)
	state := &State{
		SessionID:         "s1",
		Category:          "coding",
		Status:            StatusAwaitingAnswer,
		QuestionCount:     1,
		CurrentQuestion:   canned,
		CurrentQuestionID: "coding_q1_f",
		SeenQuestionIDs:   []string{"coding_q1_f"},
		Messages:          []models.Message{{Role: models.RoleInterviewer, Content: canned}},
	}

	result, err := c.SubmitAnswer(context.Background(), state, linkedListAnswer)
	if err != nil {
		t.Fatalf("SubmitAnswer returned error: %v", err)
	}
	if result.NextQuestion != GenericQuestion || result.NextQuestionID != "coding_q1_f_f" {
		t.Fatalf("unexpected follow-up %q (%s)", result.NextQuestion, result.NextQuestionID)
	}
}
