package apperrors

import "errors"

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrNotAssignee   = errors.New("task can only be updated by its assignee")
	ErrInvalidStatus = errors.New("invalid task status")
)
