package irparse

import (
	"fmt"

	"passlens/internal/diag"
)

// MalformedError reports dump text that does not match the expected grammar
// for its declared tier.
type MalformedError struct {
	Tier   string
	Line   int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s dump at line %d: %s", e.Tier, e.Line, e.Reason)
}

// Code returns the diagnostic code this error maps to.
func (e *MalformedError) Code() diag.Code {
	return diag.MalformedDump
}
