// Package cssgen turns the control values of the visual style editors into
// CSS declaration values. Every formatter is a pure function of its input.
package cssgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Property names a CSS property produced by one of the visual editors.
type Property string

const (
	PropertyBoxShadow    Property = "box-shadow"
	PropertyTextShadow   Property = "text-shadow"
	PropertyGradient     Property = "background-image"
	PropertyTransform    Property = "transform"
	PropertyFilter       Property = "filter"
	PropertyAnimation    Property = "animation"
	PropertyBorderRadius Property = "border-radius"
	PropertyTypography   Property = "font"
)

// ErrUnknownProperty is returned when no editor formats the requested property.
var ErrUnknownProperty = errors.New("unknown css property")

// Declaration is a set of editor parameters that renders to a CSS value.
type Declaration interface {
	Property() Property
	Value() string
}

// Format renders the declaration as "property: value;".
func Format(d Declaration) string {
	return fmt.Sprintf("%s: %s;", d.Property(), d.Value())
}

// Editor describes one supported property together with its default parameters.
type Editor struct {
	Property Property
	Name     string
	Defaults Declaration
}

// Properties lists the supported editors in a stable order.
func Properties() []Editor {
	return []Editor{
		{Property: PropertyBoxShadow, Name: "Box Shadow", Defaults: DefaultBoxShadow()},
		{Property: PropertyTextShadow, Name: "Text Shadow", Defaults: DefaultTextShadow()},
		{Property: PropertyGradient, Name: "Gradient", Defaults: DefaultGradient()},
		{Property: PropertyTransform, Name: "Transform", Defaults: DefaultTransform()},
		{Property: PropertyFilter, Name: "Filter", Defaults: DefaultFilter()},
		{Property: PropertyAnimation, Name: "Animation", Defaults: DefaultAnimation()},
		{Property: PropertyBorderRadius, Name: "Border Radius", Defaults: DefaultBorderRadius()},
		{Property: PropertyTypography, Name: "Typography", Defaults: DefaultTypography()},
	}
}

// ParseProperty resolves a property name, accepting a few editor aliases.
func ParseProperty(name string) (Property, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "box-shadow", "boxshadow":
		return PropertyBoxShadow, nil
	case "text-shadow", "textshadow":
		return PropertyTextShadow, nil
	case "background-image", "gradient":
		return PropertyGradient, nil
	case "transform":
		return PropertyTransform, nil
	case "filter":
		return PropertyFilter, nil
	case "animation":
		return PropertyAnimation, nil
	case "border-radius", "borderradius":
		return PropertyBorderRadius, nil
	case "font", "typography":
		return PropertyTypography, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
}

// FormatDeclaration decodes raw editor parameters for the given property.
// Missing fields keep the editor defaults.
func FormatDeclaration(kind Property, params json.RawMessage) (Declaration, error) {
	switch kind {
	case PropertyBoxShadow:
		return decodeInto(params, DefaultBoxShadow())
	case PropertyTextShadow:
		return decodeInto(params, DefaultTextShadow())
	case PropertyGradient:
		return decodeInto(params, DefaultGradient())
	case PropertyTransform:
		return decodeInto(params, DefaultTransform())
	case PropertyFilter:
		return decodeInto(params, DefaultFilter())
	case PropertyAnimation:
		return decodeInto(params, DefaultAnimation())
	case PropertyBorderRadius:
		return decodeInto(params, DefaultBorderRadius())
	case PropertyTypography:
		return decodeInto(params, DefaultTypography())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, kind)
	}
}

func decodeInto[T Declaration](params json.RawMessage, value T) (Declaration, error) {
	if len(params) == 0 || string(params) == "null" {
		return value, nil
	}
	if err := json.Unmarshal(params, &value); err != nil {
		return nil, fmt.Errorf("decode %s parameters: %w", value.Property(), err)
	}
	return value, nil
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func px(v float64) string {
	return number(v) + "px"
}

func deg(v float64) string {
	return number(v) + "deg"
}

func percent(v float64) string {
	return number(v) + "%"
}

func seconds(v float64) string {
	return number(v) + "s"
}
