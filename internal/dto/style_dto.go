package dto

import (
	"encoding/json"

	"github.com/noah-isme/gema-css-lab/pkg/cssgen"
)

// StyleEditorResponse describes one declaration editor and its defaults.
type StyleEditorResponse struct {
	Property    string             `json:"property"`
	Name        string             `json:"name"`
	Defaults    cssgen.Declaration `json:"defaults"`
	Declaration string             `json:"declaration"`
}

// NewStyleEditorResponse converts an editor descriptor into a DTO.
func NewStyleEditorResponse(editor cssgen.Editor) StyleEditorResponse {
	return StyleEditorResponse{
		Property:    string(editor.Property),
		Name:        editor.Name,
		Defaults:    editor.Defaults,
		Declaration: cssgen.Format(editor.Defaults),
	}
}

// StyleFormatRequest is one frame on the style stream.
type StyleFormatRequest struct {
	Property string          `json:"property" validate:"required"`
	Params   json.RawMessage `json:"params"`
}

// StyleFormatResponse carries a formatted declaration.
type StyleFormatResponse struct {
	Property    string `json:"property"`
	Value       string `json:"value"`
	Declaration string `json:"declaration"`
}

// NewStyleFormatResponse converts a declaration into a DTO.
func NewStyleFormatResponse(declaration cssgen.Declaration) StyleFormatResponse {
	return StyleFormatResponse{
		Property:    string(declaration.Property()),
		Value:       declaration.Value(),
		Declaration: cssgen.Format(declaration),
	}
}

// StyleStreamError is sent on the style stream when a frame cannot be formatted.
type StyleStreamError struct {
	Error string `json:"error"`
}
