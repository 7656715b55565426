package model

import "errors"

// Error taxonomy surfaced by the tracker. Handlers map these onto HTTP
// statuses; everything else is treated as an internal failure.
var (
	ErrValidation        = errors.New("validation failed")
	ErrProgramNotFound   = errors.New("program not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrItemNotFound      = errors.New("checklist item not found")
	ErrEntryNotFound     = errors.New("note entry not found")
	ErrDuplicateProgram  = errors.New("already tracking this program")
	ErrChecklistConflict = errors.New("checklist was modified concurrently")
)
