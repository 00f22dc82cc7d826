package domain

import "errors"

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInternalError        = errors.New("internal error")
	ErrUserNotFound         = errors.New("user not found")
	ErrMovementNotFound     = errors.New("movement not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrGoalNotFound         = errors.New("goal not found")
	ErrNameRequired         = errors.New("name is required")
	ErrNameTooLong          = errors.New("name exceeds maximum length")
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleTooLong         = errors.New("title exceeds maximum length")
	ErrDescriptionTooLong   = errors.New("description exceeds maximum length")
	ErrDateRequired         = errors.New("date is required")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrInvalidMovementKind  = errors.New("invalid movement kind")
	ErrInvalidGoalStatus    = errors.New("invalid goal status")
	ErrInvalidTargetAmount  = errors.New("target amount must be greater than zero")
	ErrCompletedAtMismatch  = errors.New("completedAt must be set exactly when status is completed")
	ErrCategoryKindMismatch = errors.New("category kind does not match movement kind")
	ErrCategoryInUse        = errors.New("category is referenced by movements")
	ErrInvalidDateRange     = errors.New("end date precedes start date")
)

// Validation constants
const (
	MaxCategoryNameLength = 255
	MaxGoalTitleLength    = 255
	MaxDescriptionLength  = 1000
)
