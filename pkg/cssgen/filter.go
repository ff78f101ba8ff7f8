package cssgen

import "strings"

// Filter holds the filter editor controls. Percentages are 0..200 for the
// brightness/contrast/saturate terms and 0..100 for the others.
type Filter struct {
	Blur       float64 `json:"blur" validate:"gte=0,lte=50"`
	Brightness float64 `json:"brightness" validate:"gte=0,lte=200"`
	Contrast   float64 `json:"contrast" validate:"gte=0,lte=200"`
	Grayscale  float64 `json:"grayscale" validate:"gte=0,lte=100"`
	HueRotate  float64 `json:"hueRotate" validate:"gte=0,lte=360"`
	Invert     float64 `json:"invert" validate:"gte=0,lte=100"`
	Saturate   float64 `json:"saturate" validate:"gte=0,lte=200"`
	Sepia      float64 `json:"sepia" validate:"gte=0,lte=100"`
}

// DefaultFilter returns the filter that leaves an element unchanged.
func DefaultFilter() Filter {
	return Filter{Brightness: 100, Contrast: 100, Saturate: 100}
}

// Property implements Declaration.
func (f Filter) Property() Property { return PropertyFilter }

// Value keeps the order blur, brightness, contrast, grayscale, hue-rotate,
// invert, saturate, sepia regardless of which terms are present.
func (f Filter) Value() string {
	var terms []string
	if f.Blur != 0 {
		terms = append(terms, "blur("+px(f.Blur)+")")
	}
	if f.Brightness != 100 {
		terms = append(terms, "brightness("+percent(f.Brightness)+")")
	}
	if f.Contrast != 100 {
		terms = append(terms, "contrast("+percent(f.Contrast)+")")
	}
	if f.Grayscale != 0 {
		terms = append(terms, "grayscale("+percent(f.Grayscale)+")")
	}
	if f.HueRotate != 0 {
		terms = append(terms, "hue-rotate("+deg(f.HueRotate)+")")
	}
	if f.Invert != 0 {
		terms = append(terms, "invert("+percent(f.Invert)+")")
	}
	if f.Saturate != 100 {
		terms = append(terms, "saturate("+percent(f.Saturate)+")")
	}
	if f.Sepia != 0 {
		terms = append(terms, "sepia("+percent(f.Sepia)+")")
	}

	if len(terms) == 0 {
		return "none"
	}
	return strings.Join(terms, " ")
}
