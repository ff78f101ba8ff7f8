package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/gema-css-lab/internal/catalog"
	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/middleware"
	"github.com/noah-isme/gema-css-lab/internal/observability"
	"github.com/noah-isme/gema-css-lab/internal/preview"
	"github.com/noah-isme/gema-css-lab/pkg/evaluator"
)

// EventPublisher delivers serialized events to a broker subject. *nats.Conn satisfies it.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// EvaluationEvent is published after every graded submission.
type EvaluationEvent struct {
	ExerciseID    string    `json:"exercise_id"`
	LearnerID     uint      `json:"learner_id,omitempty"`
	Score         int       `json:"score"`
	Assessment    string    `json:"assessment"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
}

// ExerciseServiceConfig tunes grading and event delivery.
type ExerciseServiceConfig struct {
	StrictProbes bool
	Subject      string
}

// ExerciseService exposes the catalog and grades learner stylesheets.
type ExerciseService interface {
	List() dto.ExerciseListResponse
	Get(id string) (dto.ExerciseDetail, error)
	Solution(id string) (dto.ExerciseSolution, error)
	Evaluate(ctx context.Context, learnerID uint, id, css string) (dto.EvaluationResponse, error)
	Preview(id, css string) (dto.PreviewResponse, error)
}

type exerciseService struct {
	catalog   *catalog.Catalog
	progress  ProgressService
	previews  *preview.Builder
	publisher EventPublisher
	cfg       ExerciseServiceConfig
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewExerciseService constructs the exercise service. progress and publisher may be nil.
func NewExerciseService(exercises *catalog.Catalog, progress ProgressService, previews *preview.Builder, publisher EventPublisher, cfg ExerciseServiceConfig, logger zerolog.Logger) ExerciseService {
	if cfg.Subject == "" {
		cfg.Subject = "css_lab.evaluations"
	}
	if previews == nil {
		previews = preview.NewBuilder()
	}
	return &exerciseService{
		catalog:   exercises,
		progress:  progress,
		previews:  previews,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.With().Str("component", "exercise_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/gema-css-lab/internal/service/exercise"),
		now:       time.Now,
	}
}

func (s *exerciseService) List() dto.ExerciseListResponse {
	return dto.ExerciseListResponse{
		Items:  dto.NewExerciseSummarySlice(s.catalog.List()),
		Topics: s.catalog.Topics(),
	}
}

func (s *exerciseService) Get(id string) (dto.ExerciseDetail, error) {
	exercise, ok := s.catalog.Get(id)
	if !ok {
		return dto.ExerciseDetail{}, ErrExerciseNotFound
	}
	return dto.NewExerciseDetail(exercise), nil
}

func (s *exerciseService) Solution(id string) (dto.ExerciseSolution, error) {
	exercise, ok := s.catalog.Get(id)
	if !ok {
		return dto.ExerciseSolution{}, ErrExerciseNotFound
	}
	return dto.ExerciseSolution{ID: exercise.ID, SolutionCSS: exercise.SolutionCSS}, nil
}

func (s *exerciseService) Evaluate(ctx context.Context, learnerID uint, id, css string) (dto.EvaluationResponse, error) {
	exercise, ok := s.catalog.Get(id)
	if !ok {
		return dto.EvaluationResponse{}, ErrExerciseNotFound
	}
	if len(css) > dto.MaxStylesheetBytes {
		return dto.EvaluationResponse{}, ErrStylesheetTooLarge
	}

	spanCtx, span := s.tracer.Start(ctx, "exercises.evaluate", trace.WithAttributes(
		attribute.String("exercise.id", exercise.ID),
		attribute.Bool("learner.authenticated", learnerID != 0),
	))
	defer span.End()

	result := evaluator.EvaluateWithOptions(css, exercise.Grading(), evaluator.Options{StrictProbes: s.cfg.StrictProbes})
	span.SetAttributes(
		attribute.Int("evaluation.score", result.Score),
		attribute.String("evaluation.assessment", string(result.Assessment)),
	)

	observability.Evaluations().WithLabelValues(exercise.ID, string(result.Assessment)).Inc()
	observability.EvaluationScores().WithLabelValues(exercise.ID).Observe(float64(result.Score))

	response := dto.NewEvaluationResponse(exercise.ID, result)

	if learnerID != 0 && s.progress != nil {
		progress, err := s.progress.Record(spanCtx, learnerID, exercise.ID, result)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return dto.EvaluationResponse{}, err
		}
		response.Progress = &progress
	}

	s.publish(spanCtx, EvaluationEvent{
		ExerciseID:    exercise.ID,
		LearnerID:     learnerID,
		Score:         result.Score,
		Assessment:    string(result.Assessment),
		CorrelationID: middleware.CorrelationIDFromContext(ctx),
		EvaluatedAt:   s.now().UTC(),
	})

	s.logger.Info().
		Str("exercise_id", exercise.ID).
		Uint("learner_id", learnerID).
		Int("score", result.Score).
		Str("assessment", string(result.Assessment)).
		Msg("stylesheet evaluated")

	return response, nil
}

func (s *exerciseService) publish(ctx context.Context, event EvaluationEvent) {
	if s.publisher == nil {
		return
	}

	_, span := s.tracer.Start(ctx, "exercises.publish_event")
	defer span.End()

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode evaluation event")
		return
	}
	if err := s.publisher.Publish(s.cfg.Subject, payload); err != nil {
		span.RecordError(err)
		observability.EvaluationEventsFailed().Inc()
		s.logger.Warn().Err(err).Str("subject", s.cfg.Subject).Msg("failed to publish evaluation event")
	}
}

func (s *exerciseService) Preview(id, css string) (dto.PreviewResponse, error) {
	exercise, ok := s.catalog.Get(id)
	if !ok {
		return dto.PreviewResponse{}, ErrExerciseNotFound
	}
	if len(css) > dto.MaxStylesheetBytes {
		return dto.PreviewResponse{}, ErrStylesheetTooLarge
	}

	document, err := s.previews.Exercise(exercise.InitialHTML, css)
	if err != nil {
		return dto.PreviewResponse{}, fmt.Errorf("build preview: %w", err)
	}
	return dto.PreviewResponse{Document: document}, nil
}
