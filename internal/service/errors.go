package service

import "errors"

// Business-rule failures surfaced to callers. Store-layer failures are wrapped
// with %w and propagate unchanged; match these with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrNotPublished    = errors.New("course is not published")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrDuplicateQuiz   = errors.New("a quiz already exists for this section, delete it first")
	ErrInvalidState    = errors.New("invalid state for this operation")
)
