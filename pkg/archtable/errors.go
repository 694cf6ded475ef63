package archtable

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrArchitectureNotDetected = errors.New("archtable: could not detect architecture")

type ArchitectureNotDetectedError struct {
	Path  string
	Token string
}

func (e *ArchitectureNotDetectedError) Error() string {
	if e.Path == "" || e.Path == e.Token {
		return fmt.Sprintf("archtable: could not detect architecture from \"%s\"", e.Token)
	}
	return fmt.Sprintf("archtable: could not detect architecture of \"%s\" (token \"%s\")", e.Path, e.Token)
}

func (e *ArchitectureNotDetectedError) Is(target error) bool {
	return target == ErrArchitectureNotDetected
}
