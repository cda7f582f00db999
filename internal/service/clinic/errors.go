package clinic

import "errors"

// ErrInvalidTooth rejects a chart write outside the Universal Numbering
// System range 1..32.
var ErrInvalidTooth = errors.New("tooth number out of range")
