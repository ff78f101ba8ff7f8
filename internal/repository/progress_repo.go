package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/gema-css-lab/internal/models"
)

// Attempt is a single graded submission to be folded into progress.
type Attempt struct {
	LearnerID  uint
	ExerciseID string
	Score      int
	Assessment string
	Feedback   []string
	At         time.Time
}

// ProgressRepository persists per-learner exercise progress.
type ProgressRepository interface {
	Record(ctx context.Context, attempt Attempt) (models.ExerciseProgress, error)
	ListByLearner(ctx context.Context, learnerID uint) ([]models.ExerciseProgress, error)
	Get(ctx context.Context, learnerID uint, exerciseID string) (models.ExerciseProgress, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository constructs a progress repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// Record folds attempt into the stored row, creating it on first attempt.
// The fold is a single upsert so concurrent first attempts never collide on
// the learner/exercise unique index. The best score only moves up.
func (r *progressRepository) Record(ctx context.Context, attempt Attempt) (models.ExerciseProgress, error) {
	if attempt.At.IsZero() {
		attempt.At = time.Now().UTC()
	}

	row := models.ExerciseProgress{
		LearnerID:      attempt.LearnerID,
		ExerciseID:     attempt.ExerciseID,
		Attempts:       1,
		LastScore:      attempt.Score,
		LastAssessment: attempt.Assessment,
		BestScore:      attempt.Score,
		BestAssessment: attempt.Assessment,
		LastAttemptAt:  attempt.At,
	}
	row.SetFeedback(attempt.Feedback)

	var progress models.ExerciseProgress
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := clause.AssignmentColumns([]string{"last_score", "last_assessment", "feedback", "last_attempt_at", "updated_at"})
		updates = append(updates, clause.Assignments(map[string]interface{}{
			"attempts":        gorm.Expr("exercise_progress.attempts + 1"),
			"best_score":      gorm.Expr(bestWhenHigher("best_score")),
			"best_assessment": gorm.Expr(bestWhenHigher("best_assessment")),
		})...)

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "learner_id"}, {Name: "exercise_id"}},
			DoUpdates: updates,
		}).Create(&row).Error; err != nil {
			return err
		}

		return tx.Where("learner_id = ? AND exercise_id = ?", attempt.LearnerID, attempt.ExerciseID).First(&progress).Error
	})
	if err != nil {
		return models.ExerciseProgress{}, err
	}

	return progress, nil
}

// bestWhenHigher picks the incoming column value only when the incoming score
// beats the stored best. Both sides of an upsert SET read the pre-update row.
func bestWhenHigher(column string) string {
	return "CASE WHEN excluded.best_score > exercise_progress.best_score THEN excluded." + column +
		" ELSE exercise_progress." + column + " END"
}

func (r *progressRepository) ListByLearner(ctx context.Context, learnerID uint) ([]models.ExerciseProgress, error) {
	var items []models.ExerciseProgress
	if err := r.db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("last_attempt_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *progressRepository) Get(ctx context.Context, learnerID uint, exerciseID string) (models.ExerciseProgress, error) {
	var progress models.ExerciseProgress
	if err := r.db.WithContext(ctx).
		Where("learner_id = ? AND exercise_id = ?", learnerID, exerciseID).
		First(&progress).Error; err != nil {
		return models.ExerciseProgress{}, err
	}

	return progress, nil
}
