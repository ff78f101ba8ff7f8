package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/preview"
)

// PlaygroundService renders free-form markup and styles.
type PlaygroundService interface {
	Preview(req dto.PlaygroundPreviewRequest) (dto.PreviewResponse, error)
}

type playgroundService struct {
	previews *preview.Builder
	logger   zerolog.Logger
}

// NewPlaygroundService constructs the playground service.
func NewPlaygroundService(previews *preview.Builder, logger zerolog.Logger) PlaygroundService {
	if previews == nil {
		previews = preview.NewBuilder()
	}
	return &playgroundService{
		previews: previews,
		logger:   logger.With().Str("component", "playground_service").Logger(),
	}
}

func (s *playgroundService) Preview(req dto.PlaygroundPreviewRequest) (dto.PreviewResponse, error) {
	if len(req.HTML) > dto.MaxMarkupBytes {
		return dto.PreviewResponse{}, ErrMarkupTooLarge
	}
	if len(req.CSS) > dto.MaxStylesheetBytes {
		return dto.PreviewResponse{}, ErrStylesheetTooLarge
	}

	document, err := s.previews.Playground(req.HTML, req.CSS)
	if err != nil {
		return dto.PreviewResponse{}, fmt.Errorf("build playground preview: %w", err)
	}
	return dto.PreviewResponse{Document: document}, nil
}
