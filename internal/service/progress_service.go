package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-css-lab/internal/catalog"
	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/repository"
	"github.com/noah-isme/gema-css-lab/pkg/evaluator"
)

// ProgressService records and reports learner progress over the catalog.
type ProgressService interface {
	Record(ctx context.Context, learnerID uint, exerciseID string, result evaluator.Result) (dto.ProgressResponse, error)
	List(ctx context.Context, learnerID uint) ([]dto.ProgressResponse, error)
	Get(ctx context.Context, learnerID uint, exerciseID string) (dto.ProgressResponse, error)
	Summary(ctx context.Context, learnerID uint) (dto.ProgressSummaryResponse, error)
}

type progressService struct {
	repo     repository.ProgressRepository
	catalog  *catalog.Catalog
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewProgressService builds the progress service. cache may be nil.
func NewProgressService(repo repository.ProgressRepository, exercises *catalog.Catalog, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ProgressService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &progressService{
		repo:     repo,
		catalog:  exercises,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "progress_service").Logger(),
		now:      time.Now,
	}
}

func summaryCacheKey(learnerID uint) string {
	return fmt.Sprintf("progress:summary:learner:%d", learnerID)
}

func (s *progressService) Record(ctx context.Context, learnerID uint, exerciseID string, result evaluator.Result) (dto.ProgressResponse, error) {
	if learnerID == 0 {
		return dto.ProgressResponse{}, ErrLearnerRequired
	}
	if !result.Assessment.Valid() {
		return dto.ProgressResponse{}, fmt.Errorf("record progress: unknown assessment %q", result.Assessment)
	}

	progress, err := s.repo.Record(ctx, repository.Attempt{
		LearnerID:  learnerID,
		ExerciseID: exerciseID,
		Score:      result.Score,
		Assessment: string(result.Assessment),
		Feedback:   result.Feedback,
		At:         s.now().UTC(),
	})
	if err != nil {
		return dto.ProgressResponse{}, fmt.Errorf("record progress: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, summaryCacheKey(learnerID)).Err(); err != nil {
			s.logger.Warn().Err(err).Uint("learner_id", learnerID).Msg("failed to invalidate progress cache")
		}
	}

	return dto.NewProgressResponse(progress), nil
}

func (s *progressService) List(ctx context.Context, learnerID uint) ([]dto.ProgressResponse, error) {
	if learnerID == 0 {
		return nil, ErrLearnerRequired
	}

	items, err := s.repo.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return dto.NewProgressResponseSlice(items), nil
}

func (s *progressService) Get(ctx context.Context, learnerID uint, exerciseID string) (dto.ProgressResponse, error) {
	if learnerID == 0 {
		return dto.ProgressResponse{}, ErrLearnerRequired
	}
	if _, ok := s.catalog.Get(exerciseID); !ok {
		return dto.ProgressResponse{}, ErrExerciseNotFound
	}

	progress, err := s.repo.Get(ctx, learnerID, exerciseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProgressResponse{}, ErrProgressNotFound
	}
	if err != nil {
		return dto.ProgressResponse{}, err
	}
	return dto.NewProgressResponse(progress), nil
}

func (s *progressService) Summary(ctx context.Context, learnerID uint) (dto.ProgressSummaryResponse, error) {
	if learnerID == 0 {
		return dto.ProgressSummaryResponse{}, ErrLearnerRequired
	}

	cacheKey := summaryCacheKey(learnerID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.ProgressSummaryResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("learner_id", learnerID).Msg("progress cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read progress cache")
		}
	}

	items, err := s.List(ctx, learnerID)
	if err != nil {
		return dto.ProgressSummaryResponse{}, err
	}

	response := dto.ProgressSummaryResponse{
		TotalExercises: s.catalog.Len(),
		Items:          items,
	}
	var bestTotal int
	for _, item := range items {
		if _, known := s.catalog.Get(item.ExerciseID); !known {
			continue
		}
		response.Attempted++
		bestTotal += item.BestScore
		if evaluator.Assessment(item.BestAssessment) == evaluator.Correct {
			response.Completed++
		}
	}
	if response.Attempted > 0 {
		response.AverageBestScore = math.Round(float64(bestTotal)/float64(response.Attempted)*100) / 100
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store progress cache")
			}
		}
	}

	return response, nil
}
