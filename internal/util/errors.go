package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrFormNotFound       = errors.New("form not found")
	ErrFormNotPublished   = errors.New("form not published or not accessible")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrOptionMinimum      = errors.New("a choice question keeps at least two options")
	ErrOptionIndex        = errors.New("option index out of range")
	ErrOptionsUnsupported = errors.New("only choice questions carry options")
	ErrInvalidType        = errors.New("unknown question type")
	ErrRatingBounds       = errors.New("rating bounds out of range")
	ErrTitleRequired      = errors.New("every question needs a title before publishing")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrSessionNotFound    = errors.New("chat session not found")
	ErrSessionCompleted   = errors.New("chat session already completed")
)
