package botwire

import (
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// ErrKindNotRecognized is the error returned when none of a union's declared
// candidates structurally matches the offered JSON node. It carries the
// union's logical name and the original node for diagnostics.
type ErrKindNotRecognized struct {
	union string
	raw   jsontext.Value
}

func (e ErrKindNotRecognized) Error() string {
	return fmt.Sprintf("no candidate of union %s matches %s", e.union, e.raw)
}

// Union returns the logical name of the union whose candidate set was
// exhausted.
func (e ErrKindNotRecognized) Union() string { return e.union }

// Raw returns the JSON node that no candidate accepted.
func (e ErrKindNotRecognized) Raw() jsontext.Value { return e.raw }

// ErrUnknownAlternative is the error returned by MarshalFunc when the value
// being marshaled is not in the union's candidate set. Placing such a value
// into a union-typed field is a programming error, not a recoverable
// condition.
type ErrUnknownAlternative struct {
	union string
	typ   string
}

func (e ErrUnknownAlternative) Error() string {
	return fmt.Sprintf("unknown alternative %s for union %s", e.typ, e.union)
}

// ErrInvalidEndpoint is the error returned by Assemble and Endpoint when the
// computed request address is not a structurally valid URL. No request is
// attempted.
type ErrInvalidEndpoint struct {
	endpoint string
	reason   string
}

func (e ErrInvalidEndpoint) Error() string {
	return fmt.Sprintf("invalid endpoint %q: %s", e.endpoint, e.reason)
}
