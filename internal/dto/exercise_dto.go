package dto

import (
	"github.com/noah-isme/gema-css-lab/internal/catalog"
	"github.com/noah-isme/gema-css-lab/pkg/evaluator"
)

// Size limits count encoded bytes, not characters.
const (
	// MaxStylesheetBytes bounds learner stylesheets accepted by the API.
	MaxStylesheetBytes = 64 * 1024
	// MaxMarkupBytes bounds playground markup.
	MaxMarkupBytes = 64 * 1024
)

// ExerciseSummary lists an exercise without its reference material.
type ExerciseSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Topic         string   `json:"topic"`
	Difficulty    string   `json:"difficulty"`
	Description   string   `json:"description"`
	LearningGoals []string `json:"learning_goals"`
}

// ExerciseDetail is the payload for a single exercise.
type ExerciseDetail struct {
	ExerciseSummary
	InitialHTML string   `json:"initial_html"`
	Hints       []string `json:"hints"`
}

// ExerciseSolution reveals the model stylesheet.
type ExerciseSolution struct {
	ID          string `json:"id"`
	SolutionCSS string `json:"solution_css"`
}

// ExerciseListResponse wraps the catalog listing.
type ExerciseListResponse struct {
	Items  []ExerciseSummary `json:"items"`
	Topics []string          `json:"topics"`
}

// NewExerciseSummary converts a catalog entry into a DTO.
func NewExerciseSummary(exercise catalog.Exercise) ExerciseSummary {
	goals := exercise.LearningGoals
	if goals == nil {
		goals = []string{}
	}
	return ExerciseSummary{
		ID:            exercise.ID,
		Title:         exercise.Title,
		Topic:         exercise.Topic,
		Difficulty:    exercise.Difficulty,
		Description:   exercise.Description,
		LearningGoals: goals,
	}
}

// NewExerciseSummarySlice converts catalog entries into DTOs.
func NewExerciseSummarySlice(exercises []catalog.Exercise) []ExerciseSummary {
	responses := make([]ExerciseSummary, 0, len(exercises))
	for _, exercise := range exercises {
		responses = append(responses, NewExerciseSummary(exercise))
	}
	return responses
}

// NewExerciseDetail converts a catalog entry into its detail DTO.
func NewExerciseDetail(exercise catalog.Exercise) ExerciseDetail {
	hints := exercise.Hints
	if hints == nil {
		hints = []string{}
	}
	return ExerciseDetail{
		ExerciseSummary: NewExerciseSummary(exercise),
		InitialHTML:     exercise.InitialHTML,
		Hints:           hints,
	}
}

// EvaluateRequest carries a learner stylesheet.
type EvaluateRequest struct {
	CSS string `json:"css"`
}

// EvaluationResponse is the graded result of a submission.
type EvaluationResponse struct {
	ExerciseID string              `json:"exercise_id"`
	Score      int                 `json:"score"`
	Assessment string              `json:"assessment"`
	Label      string              `json:"label"`
	Feedback   []string            `json:"feedback"`
	Breakdown  evaluator.Breakdown `json:"breakdown"`
	Progress   *ProgressResponse   `json:"progress,omitempty"`
}

// NewEvaluationResponse converts an evaluator result into a DTO.
func NewEvaluationResponse(exerciseID string, result evaluator.Result) EvaluationResponse {
	feedback := result.Feedback
	if feedback == nil {
		feedback = []string{}
	}
	return EvaluationResponse{
		ExerciseID: exerciseID,
		Score:      result.Score,
		Assessment: string(result.Assessment),
		Label:      result.Assessment.Label(),
		Feedback:   feedback,
		Breakdown:  result.Breakdown,
	}
}

// PreviewRequest carries the stylesheet to render over exercise markup.
type PreviewRequest struct {
	CSS string `json:"css"`
}

// PlaygroundPreviewRequest carries free-form markup and styles.
type PlaygroundPreviewRequest struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}

// PreviewResponse wraps a rendered HTML document.
type PreviewResponse struct {
	Document string `json:"document"`
}
