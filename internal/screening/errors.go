package screening

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is matched by errors.Is for any *UnknownRoleError.
var ErrUnknownRole = errors.New("unknown role")

// UnknownRoleError reports a role that is not present in the taxonomy.
// It signals a caller or configuration bug and is never degraded into a result.
type UnknownRoleError struct {
	Role  string
	Known []string
}

func (e *UnknownRoleError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown role %q", e.Role)
	}
	return fmt.Sprintf("unknown role %q (known: %s)", e.Role, strings.Join(e.Known, ", "))
}

// Is makes errors.Is(err, ErrUnknownRole) true.
func (e *UnknownRoleError) Is(target error) bool {
	return target == ErrUnknownRole
}
