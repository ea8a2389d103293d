package audit

import "fmt"

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // backend type ("sqlite", "memory")
	Operation string // operation that failed ("store", "query", "delete")
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("audit storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// ExportError represents an error during bundle export.
type ExportError struct {
	Format  string // export format ("json", "csv")
	Bundles int    // number of bundles being exported
	Cause   error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("audit export error [format=%s, bundles=%d]: %v", e.Format, e.Bundles, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(format string, bundles int, cause error) *ExportError {
	return &ExportError{
		Format:  format,
		Bundles: bundles,
		Cause:   cause,
	}
}
