package cssgen

import (
	"strconv"
	"strings"
)

// Typography holds the typography editor controls rendered as the font shorthand.
type Typography struct {
	FontStyle  string  `json:"fontStyle" validate:"oneof=normal italic oblique"`
	FontWeight int     `json:"fontWeight" validate:"gte=100,lte=900"`
	FontSize   float64 `json:"fontSize" validate:"gte=8,lte=128"`
	LineHeight float64 `json:"lineHeight" validate:"gte=0.5,lte=4"`
	FontFamily string  `json:"fontFamily" validate:"required,max=128,excludesall=;{}"`
}

// DefaultTypography returns the editor's initial state.
func DefaultTypography() Typography {
	return Typography{
		FontStyle:  "normal",
		FontWeight: 400,
		FontSize:   16,
		LineHeight: 1.5,
		FontFamily: "system-ui, sans-serif",
	}
}

// Property implements Declaration.
func (t Typography) Property() Property { return PropertyTypography }

// Value renders e.g. "italic 700 24px/1.2 Georgia, serif".
func (t Typography) Value() string {
	return strings.Join([]string{
		t.FontStyle,
		strconv.Itoa(t.FontWeight),
		px(t.FontSize) + "/" + number(t.LineHeight),
		strings.TrimSpace(t.FontFamily),
	}, " ")
}
