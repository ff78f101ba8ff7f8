package cssgen

import "strings"

// BorderRadius holds the per-corner radius controls.
type BorderRadius struct {
	TopLeft     float64 `json:"topLeft" validate:"gte=0,lte=500"`
	TopRight    float64 `json:"topRight" validate:"gte=0,lte=500"`
	BottomRight float64 `json:"bottomRight" validate:"gte=0,lte=500"`
	BottomLeft  float64 `json:"bottomLeft" validate:"gte=0,lte=500"`
	Unit        string  `json:"unit" validate:"oneof=px %"`
}

// DefaultBorderRadius returns the editor's initial state.
func DefaultBorderRadius() BorderRadius {
	return BorderRadius{TopLeft: 8, TopRight: 8, BottomRight: 8, BottomLeft: 8, Unit: "px"}
}

// Property implements Declaration.
func (b BorderRadius) Property() Property { return PropertyBorderRadius }

// Value collapses to a single length when all four corners match.
func (b BorderRadius) Value() string {
	unit := b.Unit
	if unit == "" {
		unit = "px"
	}

	if b.TopLeft == b.TopRight && b.TopRight == b.BottomRight && b.BottomRight == b.BottomLeft {
		return number(b.TopLeft) + unit
	}

	return strings.Join([]string{
		number(b.TopLeft) + unit,
		number(b.TopRight) + unit,
		number(b.BottomRight) + unit,
		number(b.BottomLeft) + unit,
	}, " ")
}
