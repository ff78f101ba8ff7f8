package evaluator

// Assessment is the discrete grade attached to an evaluation.
type Assessment string

const (
	NotAttempted     Assessment = "not_attempted"
	NeedsImprovement Assessment = "needs_improvement"
	GoodEffort       Assessment = "good_effort"
	PartiallyCorrect Assessment = "partially_correct"
	Correct          Assessment = "correct"
)

// Score thresholds, inclusive lower bounds.
const (
	goodEffortMin       = 40
	partiallyCorrectMin = 70
	correctMin          = 90
)

// AssessmentFor maps a score to its label. NotAttempted is never returned
// here; it is reserved for submissions rejected by the length guard.
func AssessmentFor(score int) Assessment {
	switch {
	case score >= correctMin:
		return Correct
	case score >= partiallyCorrectMin:
		return PartiallyCorrect
	case score >= goodEffortMin:
		return GoodEffort
	default:
		return NeedsImprovement
	}
}

// Rank orders the labels from NotAttempted (0) to Correct (4).
func (a Assessment) Rank() int {
	switch a {
	case NeedsImprovement:
		return 1
	case GoodEffort:
		return 2
	case PartiallyCorrect:
		return 3
	case Correct:
		return 4
	default:
		return 0
	}
}

// Label is the text shown next to the score.
func (a Assessment) Label() string {
	switch a {
	case NeedsImprovement:
		return "Needs Improvement"
	case GoodEffort:
		return "Good Effort"
	case PartiallyCorrect:
		return "Partially Correct"
	case Correct:
		return "Correct"
	default:
		return "Not Attempted"
	}
}

// Valid reports whether a is one of the known labels.
func (a Assessment) Valid() bool {
	switch a {
	case NotAttempted, NeedsImprovement, GoodEffort, PartiallyCorrect, Correct:
		return true
	}
	return false
}
