package leads

import "errors"

// ErrAllFieldsRequired is returned when any of the seven form fields is
// missing or empty.
var ErrAllFieldsRequired = errors.New("all fields are required")
