package ports

import "context"

// RemoteRegistryPort uploads schemas to an external registry service. The
// remote consumes (version, identifier, canonical form) tuples; the core
// never talks to the network itself.
type RemoteRegistryPort interface {
	// PrepareSubject makes the subject writable for out-of-order version
	// uploads, deleting any existing subject first.
	PrepareSubject(ctx context.Context, subject string) error

	// UploadSchema registers one canonical schema under the subject with
	// an explicit remote version number.
	UploadSchema(ctx context.Context, subject string, remoteVersion int, canonical []byte) error

	// CloseSubject returns the subject to normal read-write operation.
	CloseSubject(ctx context.Context, subject string) error
}
