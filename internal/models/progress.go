package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ExerciseProgress tracks a learner's attempts on one catalog exercise.
type ExerciseProgress struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	LearnerID      uint           `gorm:"not null;uniqueIndex:idx_progress_learner_exercise" json:"learner_id"`
	ExerciseID     string         `gorm:"size:64;not null;uniqueIndex:idx_progress_learner_exercise" json:"exercise_id"`
	Attempts       int            `gorm:"not null;default:0" json:"attempts"`
	LastScore      int            `gorm:"not null;default:0" json:"last_score"`
	LastAssessment string         `gorm:"size:32;not null" json:"last_assessment"`
	BestScore      int            `gorm:"not null;default:0" json:"best_score"`
	BestAssessment string         `gorm:"size:32;not null" json:"best_assessment"`
	Feedback       datatypes.JSON `gorm:"type:json" json:"-"`
	LastAttemptAt  time.Time      `json:"last_attempt_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName pins the table name.
func (ExerciseProgress) TableName() string {
	return "exercise_progress"
}

// SetFeedback serializes the latest feedback lines into the JSON column.
func (p *ExerciseProgress) SetFeedback(lines []string) {
	if lines == nil {
		lines = []string{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		p.Feedback = datatypes.JSON([]byte("[]"))
		return
	}
	p.Feedback = datatypes.JSON(data)
}

// FeedbackLines deserializes the stored feedback.
func (p ExerciseProgress) FeedbackLines() []string {
	if len(p.Feedback) == 0 {
		return nil
	}

	var lines []string
	if err := json.Unmarshal(p.Feedback, &lines); err != nil {
		return nil
	}
	return lines
}
