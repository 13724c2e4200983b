package assets

import "errors"

// ErrNotFound is returned by Delete when the named object is absent.
// Callers treating deletion as best-effort check for it explicitly.
var ErrNotFound = errors.New("assets: object not found")

// Store is a named-blob store. Objects live under a logical namespace
// ("images"); Write returns the logical path ("/images/<fileName>")
// that gets persisted on the owning row.
type Store interface {
	// EnsureNamespace makes sure the namespace exists. Idempotent.
	EnsureNamespace(namespace string) error

	// Write stores data under namespace/fileName and returns the
	// logical path of the object.
	Write(namespace, fileName string, data []byte) (string, error)

	// Delete removes the object, returning ErrNotFound when it is
	// already absent.
	Delete(namespace, fileName string) error

	// Exists reports whether the object is present.
	Exists(namespace, fileName string) (bool, error)
}

// FileName extracts the object file name from a logical path produced
// by Write.
func FileName(logicalPath string) string {
	for i := len(logicalPath) - 1; i >= 0; i-- {
		if logicalPath[i] == '/' {
			return logicalPath[i+1:]
		}
	}
	return logicalPath
}

// LogicalPath builds the logical path for an object.
func LogicalPath(namespace, fileName string) string {
	return "/" + namespace + "/" + fileName
}
