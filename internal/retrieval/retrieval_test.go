package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

func doc(id, category, content string) models.Exemplar {
	return models.Exemplar{
		Content:  content,
		Metadata: models.ExemplarMetadata{ID: id, Category: category, Question: content},
	}
}

func ids(docs []models.Exemplar) string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Metadata.ID
	}
	return strings.Join(out, ",")
}

func TestTokenize(t *testing.T) {
	got := tokenize("Reverse the LINKED list, reverse it in O(1) space!")
	want := "reverse,linked,list,space"
	if strings.Join(got, ",") != want {
		t.Fatalf("tokenize = %v, want %s", got, want)
	}
}

func TestRankOrdersByOverlapWithStableTies(t *testing.T) {
	docs := []models.Exemplar{
		doc("a", "coding", "binary search tree"),
		doc("b", "coding", "linked list reversal"),
		doc("c", "coding", "linked list cycle"),
		doc("d", "behavioral", "linked list story"),
	}

	got := Rank("reverse a linked list", docs, "coding", 2)
	if ids(got) != "b,c" {
		t.Fatalf("unexpected ranking %s", ids(got))
	}

	// zero overlap still fills k in input order
	got = Rank("unrelated words", docs, "coding", 5)
	if ids(got) != "a,b,c" {
		t.Fatalf("expected all coding docs in order, got %s", ids(got))
	}

	// empty category searches everything
	got = Rank("linked list story", docs, "", 1)
	if ids(got) != "d" {
		t.Fatalf("expected best overall match, got %s", ids(got))
	}

	if Rank("anything", docs, "coding", 0) != nil {
		t.Fatal("expected nil for k <= 0")
	}
}

func TestLoadBank(t *testing.T) {
	docs, err := LoadBank()
	if err != nil {
		t.Fatalf("LoadBank error: %v", err)
	}

	perCategory := map[string]int{}
	for _, d := range docs {
		perCategory[d.Metadata.Category]++
		if !strings.HasPrefix(d.Content, "Question: "+d.Metadata.Question) {
			t.Fatalf("document %s not rendered with question header", d.Metadata.ID)
		}
		if !models.ValidDifficulties[d.Metadata.Difficulty] {
			t.Fatalf("document %s has invalid difficulty %q", d.Metadata.ID, d.Metadata.Difficulty)
		}
	}
	for _, c := range models.SupportedCategoriesList() {
		if perCategory[c] == 0 {
			t.Fatalf("bank has no entries for %s", c)
		}
	}
}

func TestParseBankRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown category": "categories:\n  - name: trivia\n    entries: []\n",
		"missing id":       "categories:\n  - name: coding\n    entries:\n      - question: q\n",
		"duplicate id":     "categories:\n  - name: coding\n    entries:\n      - {id: x, question: q}\n      - {id: x, question: r}\n",
		"bad yaml":         "categories: [",
	}
	for name, input := range cases {
		if _, err := ParseBank([]byte(input)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestRenderIncludesSections(t *testing.T) {
	ex := Render("coding", BankEntry{
		ID:             "x1",
		Question:       "Q?",
		Difficulty:     "easy",
		ExpertApproach: "do it",
		KeyPoints:      []string{"kp"},
		FollowUps:      []string{"fu"},
	})
	for _, want := range []string{"Category: coding", "Expert Approach:\ndo it", "Key Points:\n- kp", "Follow-ups:\n- fu"} {
		if !strings.Contains(ex.Content, want) {
			t.Fatalf("rendered content missing %q:\n%s", want, ex.Content)
		}
	}
	if strings.Contains(ex.Content, "Common Mistakes") {
		t.Fatal("empty sections should be omitted")
	}
}

func TestDefaultIndexFirstQuestionPerCategory(t *testing.T) {
	idx, err := NewDefaultIndex()
	if err != nil {
		t.Fatalf("NewDefaultIndex error: %v", err)
	}
	if idx.Len() == 0 {
		t.Fatal("expected documents in default index")
	}

	for _, category := range models.SupportedCategoriesList() {
		got, err := idx.Search(context.Background(), category+" interview question", category, 1)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(got) != 1 || got[0].Metadata.ID != category+"_q1" {
			t.Fatalf("expected %s_q1 first, got %s", category, ids(got))
		}
	}
}

func TestIndexSearchGrounding(t *testing.T) {
	idx, err := NewDefaultIndex()
	if err != nil {
		t.Fatalf("NewDefaultIndex error: %v", err)
	}

	got, err := idx.Search(context.Background(), "Detect whether a linked list contains a cycle.", "coding", 2)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 2 || got[0].Metadata.ID != "coding_q3" {
		t.Fatalf("expected cycle question first, got %s", ids(got))
	}
}

func TestIndexSearchHonoursCancellation(t *testing.T) {
	idx := NewIndex(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := idx.Search(ctx, "q", "", 1); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
