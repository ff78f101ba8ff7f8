package cssgen

import (
	"fmt"
	"strings"
)

// Gradient types supported by the gradient editor.
const (
	GradientLinear = "linear"
	GradientRadial = "radial"
)

// ColorStop is one colour of a gradient at a position in percent.
type ColorStop struct {
	ColorHex string  `json:"colorHex" validate:"required,hexcolor"`
	Opacity  float64 `json:"opacity" validate:"gte=0,lte=1"`
	Position float64 `json:"position" validate:"gte=0,lte=100"`
}

// Gradient holds the gradient editor controls.
type Gradient struct {
	Type  string      `json:"type" validate:"oneof=linear radial"`
	Angle float64     `json:"angle" validate:"gte=0,lte=360"`
	Shape string      `json:"shape" validate:"omitempty,oneof=circle ellipse"`
	Stops []ColorStop `json:"stops" validate:"min=2,max=8,dive"`
}

// DefaultGradient returns the editor's initial state.
func DefaultGradient() Gradient {
	return Gradient{
		Type:  GradientLinear,
		Angle: 90,
		Shape: "circle",
		Stops: []ColorStop{
			{ColorHex: "#6366f1", Opacity: 1, Position: 0},
			{ColorHex: "#ec4899", Opacity: 1, Position: 100},
		},
	}
}

// Property implements Declaration.
func (g Gradient) Property() Property { return PropertyGradient }

// Value renders the stops in the order they were given.
func (g Gradient) Value() string {
	stops := make([]string, 0, len(g.Stops))
	for _, stop := range g.Stops {
		stops = append(stops, RGBA(stop.ColorHex, stop.Opacity)+" "+percent(stop.Position))
	}

	if g.Type == GradientRadial {
		shape := g.Shape
		if shape == "" {
			shape = "circle"
		}
		return fmt.Sprintf("radial-gradient(%s, %s)", shape, strings.Join(stops, ", "))
	}

	return fmt.Sprintf("linear-gradient(%s, %s)", deg(g.Angle), strings.Join(stops, ", "))
}
