package repository

import "errors"

// Common repository errors
var (
	// ErrFamilyNotFound is returned when a family is not found
	ErrFamilyNotFound = errors.New("family not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrScheduleNotFound is returned when a schedule is not found
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrRewardNotFound is returned when a reward is not found
	ErrRewardNotFound = errors.New("reward not found")

	// ErrReminderNotFound is returned when a reminder is not found
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrStudyScheduleNotFound is returned when a study schedule is not found
	ErrStudyScheduleNotFound = errors.New("study schedule not found")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientPoints is returned when a conditional point debit finds
	// the balance below the requested amount
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrOutOfStock is returned when a conditional stock decrement finds no
	// stock left
	ErrOutOfStock = errors.New("reward out of stock")
)
