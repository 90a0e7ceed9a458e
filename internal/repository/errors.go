package repository

import (
	"errors"
	"net"
	"strings"

	"gorm.io/gorm"
)

// Gateway error taxonomy. Handlers map these to distinct user-facing
// responses: a missing session is a login prompt, a missing owner column is
// a migration instruction, an exhausted transient failure gets a retry hint.
var (
	ErrNotConfigured    = errors.New("storage backend is not configured")
	ErrNotAuthenticated = errors.New("no authenticated session")
	ErrSchemaMismatch   = errors.New("owner column missing from schema")
	ErrNotFound         = errors.New("record not found")
)

// IsTransient reports whether err looks like a temporary I/O failure worth
// retrying. Auth, schema and validation failures never qualify.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrSchemaMismatch) ||
		errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotConfigured) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, probe := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"bad connection",
		"server closed",
	} {
		if strings.Contains(msg, probe) {
			return true
		}
	}
	return false
}

// translate normalizes driver errors into the gateway taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isMissingOwnerColumn(err):
		return errors.Join(ErrSchemaMismatch, err)
	default:
		return err
	}
}

// isMissingOwnerColumn detects the "column owner_id does not exist" class of
// driver errors, which points at an unmigrated schema rather than an outage.
func isMissingOwnerColumn(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "owner_id") {
		return false
	}
	return strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "unknown column")
}
