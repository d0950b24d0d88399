package tempest

import (
	"fmt"

	"github.com/davethiede/libtempest/internal/wire"
)

// Decode failures are reported through a closed set of error kinds, each
// inspectable with errors.As (or errors.Is for the sentinel). No failure is
// retried internally and no partial record is ever returned.
type (
	// SyntaxError reports packet text that is not a well-formed JSON object.
	SyntaxError = wire.SyntaxError
	// MissingFieldError reports an absent required field.
	MissingFieldError = wire.MissingFieldError
	// TypeMismatchError reports a field or slot of the wrong JSON type, or a
	// number outside its declared range.
	TypeMismatchError = wire.TypeMismatchError
	// ArityMismatchError reports an observation array of the wrong length.
	ArityMismatchError = wire.ArityMismatchError
)

// ErrMissingDiscriminator reports a packet whose "type" field is absent or
// not a string.
var ErrMissingDiscriminator = wire.ErrMissingDiscriminator

// UnknownVariantError reports a discriminator outside the closed packet type
// table. Unknown types always fail; there is no fallback variant.
type UnknownVariantError struct {
	Tag string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unrecognized packet type %q", e.Tag)
}
