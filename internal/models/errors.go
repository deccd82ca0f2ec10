package models

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrSizeMismatch  = errors.New("layer size mismatch")
	ErrDocument      = errors.New("document error")
	ErrJob           = errors.New("job error")
)

// ConfigError is fatal for the whole run.
type ConfigError struct {
	Field   string
	Message string
}

func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

type SizeMismatchError struct {
	Layer string
	Got   Rect
	Want  Rect
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("layer %q rendered at %s, stack canvas is %s", e.Layer, e.Got, e.Want)
}

func (e *SizeMismatchError) Unwrap() error { return ErrSizeMismatch }

// DocumentError isolates a failure to one source PDF.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() []error { return []error{ErrDocument, e.Err} }

// JobError is any failure of one recipient's job.
type JobError struct {
	Recipient string
	Err       error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("recipient %s: %v", e.Recipient, e.Err)
}

func (e *JobError) Unwrap() []error { return []error{ErrJob, e.Err} }
