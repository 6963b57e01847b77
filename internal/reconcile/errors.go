package reconcile

import (
	"errors"
	"fmt"
)

// ErrDuplicateName reports two players sharing a name.
var ErrDuplicateName = errors.New("duplicate player name")

// DuplicateNameError carries the conflicting name and the two entry indexes.
type DuplicateNameError struct {
	Name   string
	First  int
	Second int
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: %q at entries %d and %d", ErrDuplicateName, e.Name, e.First, e.Second)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}
