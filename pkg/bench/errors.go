package bench

import (
	"errors"
	"fmt"
	"os"
)

// ErrDuplicateName reports a second registration under an existing target
// name. It is a programming error, surfaced at registration time, not
// something a run can recover from.
var ErrDuplicateName = errors.New("target name already registered")

// InvalidConfigError reports a run configuration that fails validation. It is
// always surfaced before any measurement begins.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "invalid benchmark configuration: " + e.Reason
}

// MissingInputError reports that the input artifact does not exist or is not
// usable. The check runs once, before the run starts, so a bad path fails
// fast instead of failing once per target per iteration.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input artifact %s: %v", e.Path, e.Err)
}

func (e *MissingInputError) Unwrap() error { return e.Err }

// CheckInput verifies that the input artifact exists and is a regular file.
func CheckInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &MissingInputError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &MissingInputError{Path: path, Err: errors.New("is a directory, not a file")}
	}
	return nil
}
