package vault

import (
	"errors"

	"github.com/kmccarty/recordvault/internal/security"
	"github.com/kmccarty/recordvault/internal/storage"
)

// Sentinel errors callers can test with errors.Is. NotFound and
// AccessDenied are deliberately distinct outcomes.
var (
	// ErrNotFound means no record exists for the id.
	ErrNotFound = storage.ErrNotFound

	// ErrAccessDenied means the principal is excluded by the record's
	// access rule (or by the default-deny policy).
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidMetadata means the supplied metadata failed validation.
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrEmptyQuery means a search was attempted with no query text.
	ErrEmptyQuery = errors.New("query text is empty")

	// ErrNoSealKey means sealed content was encountered without a
	// configured seal key.
	ErrNoSealKey = security.ErrNoSealKey
)
