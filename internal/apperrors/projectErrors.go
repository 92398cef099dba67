package apperrors

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNotTeamMember   = errors.New("user is not a member of the team")
)
