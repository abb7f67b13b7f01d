// Package feedback maps per-frame pose quality scores to coarse form advice.
//
// The score source is an external pose estimator (or a simulated one); this
// package treats it as an opaque scalar and never influences session state.
package feedback

// Advice categories.
const (
	FormGood  = "good"
	FormCheck = "check"
)

// goodFormThreshold is the score above which form counts as good.
const goodFormThreshold = 0.7

// Result is the advisory for a single evaluation tick. Score carries the raw
// input through for display alongside the message.
type Result struct {
	Score   float64 `json:"score"`
	Advice  string  `json:"advice"`
	Message string  `json:"message"`
}

// Evaluate maps a pose quality score to form advice. Scores are nominally in
// [0,1] but are not clamped or validated: out-of-range and non-finite values
// fall through to the "check form" branch. Stateless and deterministic.
func Evaluate(score float64) Result {
	if score > goodFormThreshold {
		return Result{
			Score:   score,
			Advice:  FormGood,
			Message: "Good form! Keep going!",
		}
	}
	return Result{
		Score:   score,
		Advice:  FormCheck,
		Message: "Check your form - make sure your movements are controlled",
	}
}
