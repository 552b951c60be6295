package partner

import "errors"

// Partner-related errors
var (
	ErrInvalidPartnerID = errors.New("invalid partner ID")
	ErrEmptyPatch       = errors.New("nothing to update")
)

// MaxNameLength bounds partner names.
const MaxNameLength = 200
