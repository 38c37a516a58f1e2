package models

// contains all supported interview categories (in lowercase)
var SupportedCategories = map[string]bool{
	"coding":        true,
	"system_design": true,
	"behavioral":    true,
}

// contains all valid difficulty levels (in lowercase)
var ValidDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

const (
	CategoryCoding       = "coding"
	CategorySystemDesign = "system_design"
	CategoryBehavioral   = "behavioral"

	DefaultCategory   = CategoryCoding
	DefaultDifficulty = "medium"

	// answers shorter than this are rejected before they reach the evaluator
	MinAnswerLength = 10
)

func SupportedCategoriesList() []string {
	return []string{CategoryCoding, CategorySystemDesign, CategoryBehavioral}
}

func ValidDifficultiesList() []string {
	return []string{"easy", "medium", "hard"}
}
