// Package evaluator grades learner CSS against an exercise with a rule-based
// heuristic. Evaluation is a pure function of its inputs.
package evaluator

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Point budget per check. The budgets add up to MaxScore.
const (
	MaxScore        = 100
	effortPoints    = 10
	coveragePoints  = 30
	probePoints     = 10
	maxProbePoints  = 40
	lengthPoints    = 10
	responsivePoint = 10

	minSubmissionLength = 10
	effortLength        = 20
	minLengthRatio      = 0.5
	maxLengthRatio      = 2.0
)

// Feedback messages.
const (
	MessageTooShort       = "Your solution is too short. Write a few CSS rules to style the exercise before checking it."
	MessageEffort         = "Nice effort, your stylesheet has some substance."
	MessageLowEffort      = "Your stylesheet is very short. Try adding more rules."
	MessageComparable     = "Your solution is comparable in length to the model answer."
	MessageResponsive     = "Great job adding responsive @media rules."
	MessageFallback       = "Keep experimenting with your styles and check again."
	messageSelectorFound  = "Styled %s."
	messageSelectorMissed = "Missing styles for %s."
	messageProbeMatched   = "Uses %s."
	messageHint           = "Hint: %s"
)

// Exercise is the grading view of an exercise: the reference markup, the model
// answer and the exercise-specific keyword probes.
type Exercise struct {
	ID            string
	InitialHTML   string
	SolutionCSS   string
	LearningGoals []string
	Hints         []string
	Probes        []string
}

// Breakdown records the points awarded by each check.
type Breakdown struct {
	Effort    int `json:"effort"`
	Coverage  int `json:"coverage"`
	Keywords  int `json:"keywords"`
	Structure int `json:"structure"`
}

// Result is the outcome of one evaluation. Feedback is never empty.
type Result struct {
	Score      int        `json:"score"`
	Assessment Assessment `json:"assessment"`
	Feedback   []string   `json:"feedback"`
	Breakdown  Breakdown  `json:"breakdown"`
}

// Options tunes evaluation.
type Options struct {
	// StrictProbes matches keyword probes against the parsed stylesheet
	// instead of the raw text.
	StrictProbes bool
}

// Evaluate grades userCSS against ex with the default options.
func Evaluate(userCSS string, ex Exercise) Result {
	return EvaluateWithOptions(userCSS, ex, Options{})
}

// EvaluateWithOptions grades userCSS against ex.
func EvaluateWithOptions(userCSS string, ex Exercise, opts Options) Result {
	normalized := Normalize(userCSS)
	length := utf8.RuneCountInString(normalized)

	if length < minSubmissionLength {
		return Result{
			Score:      0,
			Assessment: NotAttempted,
			Feedback:   []string{MessageTooShort},
		}
	}

	var (
		feedback  []string
		breakdown Breakdown
	)

	if length > effortLength {
		breakdown.Effort = effortPoints
		feedback = append(feedback, MessageEffort)
	} else {
		feedback = append(feedback, MessageLowEffort)
	}

	selectors := ExtractSignificantSelectors(ex.InitialHTML)
	if len(selectors) > 0 {
		found := 0
		for _, selector := range selectors {
			if styles(normalized, selector) {
				found++
				feedback = append(feedback, fmt.Sprintf(messageSelectorFound, selector))
			} else {
				feedback = append(feedback, fmt.Sprintf(messageSelectorMissed, selector))
			}
		}
		breakdown.Coverage = int(math.Round(coveragePoints * float64(found) / float64(len(selectors))))
	}

	matcher := probeMatcher(substringMatcher{css: normalized})
	if opts.StrictProbes {
		if strict, ok := newStylesheetMatcher(userCSS); ok {
			matcher = strict
		}
	}
	for _, probe := range ex.Probes {
		if matcher.Match(probe) {
			breakdown.Keywords += probePoints
			feedback = append(feedback, fmt.Sprintf(messageProbeMatched, strings.TrimSpace(probe)))
		}
	}
	if breakdown.Keywords > maxProbePoints {
		breakdown.Keywords = maxProbePoints
	}

	if solutionLength := utf8.RuneCountInString(Normalize(ex.SolutionCSS)); solutionLength > 0 {
		ratio := float64(length) / float64(solutionLength)
		if ratio > minLengthRatio && ratio < maxLengthRatio {
			breakdown.Structure += lengthPoints
			feedback = append(feedback, MessageComparable)
		}
	}
	if strings.Contains(normalized, "@media") {
		breakdown.Structure += responsivePoint
		feedback = append(feedback, MessageResponsive)
	}

	score := breakdown.Effort + breakdown.Coverage + breakdown.Keywords + breakdown.Structure
	if score > MaxScore {
		score = MaxScore
	}

	if len(feedback) == 0 {
		feedback = append(feedback, MessageFallback)
	}
	if score < partiallyCorrectMin && len(ex.Hints) > 0 {
		feedback = append(feedback, fmt.Sprintf(messageHint, ex.Hints[0]))
	}

	return Result{
		Score:      score,
		Assessment: AssessmentFor(score),
		Feedback:   feedback,
		Breakdown:  breakdown,
	}
}

// Normalize lower-cases css and collapses every whitespace run to one space.
func Normalize(css string) string {
	return strings.Join(strings.Fields(strings.ToLower(css)), " ")
}

// styles reports whether the selector appears followed by a space or "{".
func styles(normalized, selector string) bool {
	selector = strings.ToLower(selector)
	return strings.Contains(normalized, selector+" ") || strings.Contains(normalized, selector+"{")
}
