// Package services provides shared helpers for the external tool wrappers:
// sentinel error markers with operation-aware wrapping, process exit code
// classification, and context annotation consumed by structured logging.
package services
