package cssgen

import "strings"

// BoxShadow holds the box-shadow editor controls.
type BoxShadow struct {
	OffsetX      float64 `json:"offsetX" validate:"gte=-100,lte=100"`
	OffsetY      float64 `json:"offsetY" validate:"gte=-100,lte=100"`
	BlurRadius   float64 `json:"blurRadius" validate:"gte=0,lte=200"`
	SpreadRadius float64 `json:"spreadRadius" validate:"gte=-100,lte=100"`
	ColorHex     string  `json:"colorHex" validate:"required,hexcolor"`
	Opacity      float64 `json:"opacity" validate:"gte=0,lte=1"`
	Inset        bool    `json:"inset"`
}

// DefaultBoxShadow returns the editor's initial state.
func DefaultBoxShadow() BoxShadow {
	return BoxShadow{OffsetX: 4, OffsetY: 4, BlurRadius: 8, ColorHex: "#000000", Opacity: 0.2}
}

// Property implements Declaration.
func (b BoxShadow) Property() Property { return PropertyBoxShadow }

// Value renders e.g. "4px 4px 8px 0px rgba(0, 0, 0, 0.20)".
func (b BoxShadow) Value() string {
	parts := make([]string, 0, 6)
	if b.Inset {
		parts = append(parts, "inset")
	}
	parts = append(parts,
		px(b.OffsetX),
		px(b.OffsetY),
		px(b.BlurRadius),
		px(b.SpreadRadius),
		RGBA(b.ColorHex, b.Opacity),
	)
	return strings.Join(parts, " ")
}

// TextShadow holds the text-shadow editor controls.
type TextShadow struct {
	OffsetX    float64 `json:"offsetX" validate:"gte=-50,lte=50"`
	OffsetY    float64 `json:"offsetY" validate:"gte=-50,lte=50"`
	BlurRadius float64 `json:"blurRadius" validate:"gte=0,lte=100"`
	ColorHex   string  `json:"colorHex" validate:"required,hexcolor"`
	Opacity    float64 `json:"opacity" validate:"gte=0,lte=1"`
}

// DefaultTextShadow returns the editor's initial state.
func DefaultTextShadow() TextShadow {
	return TextShadow{OffsetX: 2, OffsetY: 2, BlurRadius: 4, ColorHex: "#000000", Opacity: 0.5}
}

// Property implements Declaration.
func (t TextShadow) Property() Property { return PropertyTextShadow }

// Value renders offset, blur and an rgba colour.
func (t TextShadow) Value() string {
	return strings.Join([]string{
		px(t.OffsetX),
		px(t.OffsetY),
		px(t.BlurRadius),
		RGBA(t.ColorHex, t.Opacity),
	}, " ")
}
