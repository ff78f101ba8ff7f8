package cssgen

import (
	"strconv"
	"strings"
)

// Animation holds the animation editor controls. An iteration count of 0
// means the animation repeats forever.
type Animation struct {
	Name           string  `json:"name" validate:"required,max=64,excludesall=;{}"`
	Duration       float64 `json:"duration" validate:"gte=0,lte=60"`
	TimingFunction string  `json:"timingFunction" validate:"oneof=linear ease ease-in ease-out ease-in-out step-start step-end"`
	Delay          float64 `json:"delay" validate:"gte=0,lte=60"`
	IterationCount int     `json:"iterationCount" validate:"gte=0,lte=100"`
	Direction      string  `json:"direction" validate:"oneof=normal reverse alternate alternate-reverse"`
	FillMode       string  `json:"fillMode" validate:"oneof=none forwards backwards both"`
}

// DefaultAnimation returns the editor's initial state.
func DefaultAnimation() Animation {
	return Animation{
		Name:           "bounce",
		Duration:       1,
		TimingFunction: "ease",
		IterationCount: 0,
		Direction:      "normal",
		FillMode:       "none",
	}
}

// Property implements Declaration.
func (a Animation) Property() Property { return PropertyAnimation }

// Value renders the animation shorthand, "infinite" when IterationCount is zero.
func (a Animation) Value() string {
	count := "infinite"
	if a.IterationCount > 0 {
		count = strconv.Itoa(a.IterationCount)
	}

	return strings.Join([]string{
		strings.TrimSpace(a.Name),
		seconds(a.Duration),
		a.TimingFunction,
		seconds(a.Delay),
		count,
		a.Direction,
		a.FillMode,
	}, " ")
}
