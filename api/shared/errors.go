/* errors.go
 * Sentinel errors shared across sub packages and mapped to HTTP status codes by
 * the web layer. Wrap these with fmt.Errorf("...: %w", err) to add context
 */

package shared

import "errors"

var (
	// Unknown tournament id, out-of-range group index, missing player.
	ErrNotFound = errors.New("requested resource not found")

	// Payload failed structural validation: corrupt store override, malformed
	// upstream response, malformed admin-submitted document.
	ErrInvalid = errors.New("payload failed structural validation")

	// Network or storage failure talking to an external dependency.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// Operation requires a tournament shape the resolved tournament does not
	// have, e.g. asking for groups on a non group-stage event.
	ErrNotApplicable = errors.New("operation not applicable to tournament type")
)
