package interview

// Decision is the outcome of the continuation policy
type Decision int

const (
	Continue Decision = iota
	End
)

const (
	// MaxQuestions ends the interview once this many questions were asked
	MaxQuestions = 3
	// MaxRepeats ends the interview once this many verbatim repeats occurred
	MaxRepeats = 2
)

func (d Decision) String() string {
	if d == End {
		return "end"
	}
	return "continue"
}

// Decide ends the interview after MaxRepeats repeats or MaxQuestions questions
func Decide(questionCount, repeatCount int) Decision {
	if repeatCount >= MaxRepeats || questionCount >= MaxQuestions {
		return End
	}
	return Continue
}
