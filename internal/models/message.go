package models

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
	RoleEvaluator   Role = "evaluator"
)

// Message is a single immutable transcript entry.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func (r Role) Valid() bool {
	switch r {
	case RoleInterviewer, RoleCandidate, RoleEvaluator:
		return true
	}
	return false
}
