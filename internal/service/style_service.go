package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/observability"
	"github.com/noah-isme/gema-css-lab/pkg/cssgen"
)

// StyleService backs the visual declaration editors.
type StyleService interface {
	Properties() []dto.StyleEditorResponse
	Format(property string, params json.RawMessage) (dto.StyleFormatResponse, error)
}

type styleService struct {
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStyleService constructs the style editor service.
func NewStyleService(validate *validator.Validate, logger zerolog.Logger) StyleService {
	return &styleService{
		validator: validate,
		logger:    logger.With().Str("component", "style_service").Logger(),
	}
}

func (s *styleService) Properties() []dto.StyleEditorResponse {
	editors := cssgen.Properties()
	responses := make([]dto.StyleEditorResponse, 0, len(editors))
	for _, editor := range editors {
		responses = append(responses, dto.NewStyleEditorResponse(editor))
	}
	return responses
}

// Format decodes params over the editor defaults and renders the declaration.
// Unknown properties wrap cssgen.ErrUnknownProperty.
func (s *styleService) Format(property string, params json.RawMessage) (dto.StyleFormatResponse, error) {
	kind, err := cssgen.ParseProperty(property)
	if err != nil {
		return dto.StyleFormatResponse{}, err
	}

	declaration, err := cssgen.FormatDeclaration(kind, params)
	if err != nil {
		if errors.Is(err, cssgen.ErrUnknownProperty) {
			return dto.StyleFormatResponse{}, err
		}
		return dto.StyleFormatResponse{}, fmt.Errorf("%w: %v", ErrInvalidStyleParams, err)
	}

	if err := s.validator.Struct(declaration); err != nil {
		return dto.StyleFormatResponse{}, err
	}

	observability.StyleFormats().WithLabelValues(string(kind)).Inc()
	return dto.NewStyleFormatResponse(declaration), nil
}
