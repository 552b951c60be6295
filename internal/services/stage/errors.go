package stage

import "errors"

// Stage-related errors
var (
	ErrStageExists   = errors.New("stage already exists")
	ErrStageNotFound = errors.New("stage not found")
)

// MaxNameLength bounds stage names so board columns stay readable.
const MaxNameLength = 50
