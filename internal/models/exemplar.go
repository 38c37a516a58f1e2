package models

// Exemplar is a reference question with expert-quality answer material.
// Content holds the full rendered document used as grounding context.
type Exemplar struct {
	Content  string           `json:"content" bson:"content"`
	Metadata ExemplarMetadata `json:"metadata" bson:"metadata"`
}

type ExemplarMetadata struct {
	ID         string `json:"id" bson:"id"`
	Question   string `json:"question" bson:"question"`
	Category   string `json:"category" bson:"category"`
	Difficulty string `json:"difficulty" bson:"difficulty"`
}
