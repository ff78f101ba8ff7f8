package cssgen

import "strings"

// Transform holds the transform editor controls. Zero translate/rotate/skew and
// a scale of 1 are defaults and are left out of the rendered value.
type Transform struct {
	TranslateX float64 `json:"translateX" validate:"gte=-500,lte=500"`
	TranslateY float64 `json:"translateY" validate:"gte=-500,lte=500"`
	Rotate     float64 `json:"rotate" validate:"gte=-360,lte=360"`
	ScaleX     float64 `json:"scaleX" validate:"gte=0,lte=5"`
	ScaleY     float64 `json:"scaleY" validate:"gte=0,lte=5"`
	SkewX      float64 `json:"skewX" validate:"gte=-90,lte=90"`
	SkewY      float64 `json:"skewY" validate:"gte=-90,lte=90"`
}

// DefaultTransform returns the identity transform.
func DefaultTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Property implements Declaration.
func (t Transform) Property() Property { return PropertyTransform }

// Value lists only the non-identity functions, or "none".
func (t Transform) Value() string {
	var terms []string
	if t.TranslateX != 0 {
		terms = append(terms, "translateX("+px(t.TranslateX)+")")
	}
	if t.TranslateY != 0 {
		terms = append(terms, "translateY("+px(t.TranslateY)+")")
	}
	if t.Rotate != 0 {
		terms = append(terms, "rotate("+deg(t.Rotate)+")")
	}
	if t.ScaleX != 1 {
		terms = append(terms, "scaleX("+number(t.ScaleX)+")")
	}
	if t.ScaleY != 1 {
		terms = append(terms, "scaleY("+number(t.ScaleY)+")")
	}
	if t.SkewX != 0 {
		terms = append(terms, "skewX("+deg(t.SkewX)+")")
	}
	if t.SkewY != 0 {
		terms = append(terms, "skewY("+deg(t.SkewY)+")")
	}

	if len(terms) == 0 {
		return "none"
	}
	return strings.Join(terms, " ")
}
