package hls

import (
	"maps"

	"github.com/nabetama/nhk-radio-player/logging"
)

// StreamError represents stream-related errors with integrated logging.
type StreamError struct {
	URL     string         `json:"url"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Fields  logging.Fields `json:"fields,omitempty"`
}

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// Log logs this error using the global logger.
func (e *StreamError) Log() {
	e.LogWith(logging.WithFields(nil))
}

// LogWith logs this error using a specific logger.
func (e *StreamError) LogWith(logger logging.Logger) {
	fields := logging.Fields{
		"url":        e.URL,
		"error_code": e.Code,
	}
	maps.Copy(fields, e.Fields)

	logger.Error(e.Cause, e.Message, fields)
}

// Common error codes
const (
	ErrCodeConnection    = "CONNECTION_FAILED"
	ErrCodeTimeout       = "TIMEOUT"
	ErrCodeInvalidFormat = "INVALID_FORMAT"
	ErrCodeKeyInvalid    = "KEY_INVALID"
	ErrCodeDecryption    = "DECRYPTION_FAILED"
	ErrCodeDecoding      = "DECODING_FAILED"
	ErrCodeUnsupported   = "UNSUPPORTED_STREAM"
)

// NewStreamError creates a new stream error.
func NewStreamError(url, code, message string, cause error) *StreamError {
	return &StreamError{
		URL:     url,
		Code:    code,
		Message: message,
		Cause:   cause,
		Fields:  make(logging.Fields),
	}
}

// NewStreamErrorWithFields creates a new stream error with additional fields.
func NewStreamErrorWithFields(url, code, message string, cause error, fields logging.Fields) *StreamError {
	return &StreamError{
		URL:     url,
		Code:    code,
		Message: message,
		Cause:   cause,
		Fields:  fields,
	}
}
