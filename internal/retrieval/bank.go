package retrieval

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

//go:embed bank/exemplars.yaml
var bankYAML []byte

// BankEntry is one reference question as authored in the exemplar bank
type BankEntry struct {
	ID             string   `yaml:"id"`
	Question       string   `yaml:"question"`
	Difficulty     string   `yaml:"difficulty"`
	ExpertApproach string   `yaml:"expert_approach"`
	KeyPoints      []string `yaml:"key_points"`
	CommonMistakes []string `yaml:"common_mistakes"`
	FollowUps      []string `yaml:"follow_ups"`
}

// bank file layout: category -> entries, categories kept in file order
type bankFile struct {
	Categories []struct {
		Name    string      `yaml:"name"`
		Entries []BankEntry `yaml:"entries"`
	} `yaml:"categories"`
}

// LoadBank parses the embedded exemplar bank and renders every entry
func LoadBank() ([]models.Exemplar, error) {
	return ParseBank(bankYAML)
}

// ParseBank parses bank YAML and renders every entry into an exemplar
func ParseBank(data []byte) ([]models.Exemplar, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse exemplar bank: %w", err)
	}

	seen := make(map[string]bool)
	var out []models.Exemplar
	for _, cat := range file.Categories {
		if !models.SupportedCategories[cat.Name] {
			return nil, fmt.Errorf("exemplar bank: unsupported category %q", cat.Name)
		}
		for _, entry := range cat.Entries {
			if entry.ID == "" || entry.Question == "" {
				return nil, fmt.Errorf("exemplar bank: entry in %s missing id or question", cat.Name)
			}
			if seen[entry.ID] {
				return nil, fmt.Errorf("exemplar bank: duplicate id %q", entry.ID)
			}
			seen[entry.ID] = true
			out = append(out, Render(cat.Name, entry))
		}
	}
	return out, nil
}

// Render builds the grounding document for a bank entry
func Render(category string, entry BankEntry) models.Exemplar {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s\n", entry.Question)
	fmt.Fprintf(&sb, "Category: %s\n", category)
	fmt.Fprintf(&sb, "Difficulty: %s\n\n", entry.Difficulty)
	fmt.Fprintf(&sb, "Expert Approach:\n%s\n", strings.TrimSpace(entry.ExpertApproach))
	writeList(&sb, "Key Points", entry.KeyPoints)
	writeList(&sb, "Common Mistakes", entry.CommonMistakes)
	writeList(&sb, "Follow-ups", entry.FollowUps)

	return models.Exemplar{
		Content: strings.TrimSpace(sb.String()),
		Metadata: models.ExemplarMetadata{
			ID:         entry.ID,
			Question:   entry.Question,
			Category:   category,
			Difficulty: entry.Difficulty,
		},
	}
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}
