package grading

// Fault marks a result that reflects a configuration or collaborator
// problem rather than the learner's answer.
type Fault string

const (
	FaultNone              Fault = ""
	FaultMissingCredential Fault = "missing-credential"
	FaultGrader            Fault = "grader"
)

// Result is the graded outcome of one round.
type Result struct {
	Correct bool

	// Score is a 0–100 similarity or handwriting score. Nil for
	// multiple-choice rounds.
	Score *float64

	Feedback string

	// Input echoes what the learner typed or said.
	Input string

	Fault Fault
}

// Faulted reports whether the result must not change the schedule.
func (r *Result) Faulted() bool {
	return r.Fault != FaultNone
}

func score(v float64) *float64 {
	return &v
}
