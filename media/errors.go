package media

import "errors"

// ErrInvalidOption is returned when a pipeline option value is out of range.
var ErrInvalidOption = errors.New("invalid option")
