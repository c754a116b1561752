package contract

import "errors"

// Failure taxonomy for the load and export pipeline. All failures are caught
// at command boundaries and translated to user-visible messages; none escape
// as panics.
var (
	// ErrUnauthenticated means the credential is missing or invalid.
	// It halts the pipeline entirely.
	ErrUnauthenticated = errors.New("unauthenticated: missing or invalid credential")

	// ErrUnauthorized means the credential is valid but lacks permission.
	ErrUnauthorized = errors.New("unauthorized: credential lacks permission")

	// ErrUnavailable means a transport or server failure. Retryable by the
	// user; there is no automatic retry.
	ErrUnavailable = errors.New("analytics service unavailable")

	// ErrExportFailed means the export endpoint returned a non-success
	// response. The loaded sequence and range selection are unaffected.
	ErrExportFailed = errors.New("export failed")

	// ErrEmptyLanguages means the latest snapshot carries no language
	// stats. Distinct from a general error so callers can present a
	// domain-specific empty message instead of drawing an empty chart.
	ErrEmptyLanguages = errors.New("no language data in latest snapshot")

	// ErrSuperseded means a load completed after a newer load was issued
	// and its result was discarded before touching shared state.
	ErrSuperseded = errors.New("load superseded by a newer request")
)

// UserMessage translates a pipeline failure into the message shown to the
// user. An empty snapshot sequence is a state, not an error, and never
// reaches this function.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "Not signed in. Set GHPULSE_TOKEN or pass --token with a valid credential."
	case errors.Is(err, ErrUnauthorized):
		return "Your credential does not permit analytics access for this account."
	case errors.Is(err, ErrUnavailable):
		return "The analytics service is unreachable. Try again shortly."
	case errors.Is(err, ErrExportFailed):
		return "Export failed. Your loaded data is untouched; retry the export."
	case errors.Is(err, ErrEmptyLanguages):
		return "No language data is available for the latest snapshot."
	default:
		return err.Error()
	}
}
