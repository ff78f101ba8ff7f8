package dto

import (
	"time"

	"github.com/noah-isme/gema-css-lab/internal/models"
)

// ProgressResponse describes a learner's standing on one exercise.
type ProgressResponse struct {
	ExerciseID     string    `json:"exercise_id"`
	Attempts       int       `json:"attempts"`
	LastScore      int       `json:"last_score"`
	LastAssessment string    `json:"last_assessment"`
	BestScore      int       `json:"best_score"`
	BestAssessment string    `json:"best_assessment"`
	Feedback       []string  `json:"feedback"`
	LastAttemptAt  time.Time `json:"last_attempt_at"`
}

// NewProgressResponse converts a model into a DTO.
func NewProgressResponse(model models.ExerciseProgress) ProgressResponse {
	feedback := model.FeedbackLines()
	if feedback == nil {
		feedback = []string{}
	}
	return ProgressResponse{
		ExerciseID:     model.ExerciseID,
		Attempts:       model.Attempts,
		LastScore:      model.LastScore,
		LastAssessment: model.LastAssessment,
		BestScore:      model.BestScore,
		BestAssessment: model.BestAssessment,
		Feedback:       feedback,
		LastAttemptAt:  model.LastAttemptAt,
	}
}

// NewProgressResponseSlice converts a slice of models into DTOs.
func NewProgressResponseSlice(items []models.ExerciseProgress) []ProgressResponse {
	responses := make([]ProgressResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewProgressResponse(item))
	}
	return responses
}

// ProgressSummaryResponse aggregates a learner's progress over the catalog.
type ProgressSummaryResponse struct {
	TotalExercises   int                `json:"total_exercises"`
	Attempted        int                `json:"attempted"`
	Completed        int                `json:"completed"`
	AverageBestScore float64            `json:"average_best_score"`
	Items            []ProgressResponse `json:"items"`
}
