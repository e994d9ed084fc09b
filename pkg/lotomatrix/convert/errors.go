package convert

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrTimeout matches conversion errors caused by the wall-clock limit.
var ErrTimeout = errors.New("conversion timed out")

// Error reports a failed legacy-format conversion.
type Error struct {
	// Path is the file that was being converted.
	Path string
	// TimedOut is true when the converter was killed for exceeding its limit.
	TimedOut bool
	// Output holds the tail of the converter's combined output, if any.
	Output string
	Err    error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("convert %s: %v: %s", e.Path, e.Err, e.Output)
	}
	return fmt.Sprintf("convert %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrTimeout) match timed-out conversions.
func (e *Error) Is(target error) bool {
	return target == ErrTimeout && e.TimedOut
}
