package service

import "errors"

var (
	// ErrExerciseNotFound is returned for ids missing from the catalog.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrStylesheetTooLarge is returned when a submission exceeds the size limit.
	ErrStylesheetTooLarge = errors.New("stylesheet too large")
	// ErrMarkupTooLarge is returned when playground markup exceeds the size limit.
	ErrMarkupTooLarge = errors.New("markup too large")
	// ErrProgressNotFound is returned when a learner has no attempts on an exercise.
	ErrProgressNotFound = errors.New("progress not found")
	// ErrLearnerRequired is returned when an operation needs an authenticated learner.
	ErrLearnerRequired = errors.New("learner required")
	// ErrInvalidStyleParams is returned when editor parameters cannot be decoded.
	ErrInvalidStyleParams = errors.New("invalid style parameters")
	// ErrPreferencesUnavailable is returned when no preference store is configured.
	ErrPreferencesUnavailable = errors.New("preference store unavailable")
	// ErrAssistantUnavailable is returned when no provider credentials can be resolved.
	ErrAssistantUnavailable = errors.New("assistant unavailable")
	// ErrAssistantFailed wraps provider failures.
	ErrAssistantFailed = errors.New("assistant request failed")
)
