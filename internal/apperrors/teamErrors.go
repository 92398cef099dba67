package apperrors

import "errors"

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrMemberNotFound = errors.New("one or more user ids are invalid")
)
