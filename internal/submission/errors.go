package submission

import "errors"

// ErrInvalid is returned when a submission misses a required field or carries
// a value outside the offered options. The wrapped validation.Errors names the
// offending fields.
var ErrInvalid = errors.New("submission: invalid")
