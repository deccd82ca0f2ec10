package utils

import (
	"strings"

	"github.com/google/uuid"
)

// UserID is the local part of an email address, i.e. everything before the
// first "@". An address without "@" is returned unchanged.
func UserID(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// IsValidFolderName reports whether name can be used as a single path
// element inside the output folder.
func IsValidFolderName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}

// NewJobID returns a short unique id for one recipient job.
func NewJobID() string {
	return uuid.New().String()[:8]
}
