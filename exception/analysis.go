package exception

import "errors"

var ErrEmptyURL = errors.New("url must not be empty")

// ConfigurationError means the analysis engine can not be used at all, e.g. the credential is missing.
type ConfigurationError struct {
	Message string
}

func (e ConfigurationError) Error() string {
	return e.Message
}

// UpstreamError means the external call failed or returned nothing.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e UpstreamError) Error() string {
	return messageOrCause(e.Message, e.Cause)
}

func (e UpstreamError) Unwrap() error {
	return e.Cause
}

// ParseError means the response text is not valid JSON or breaks the audit contract.
type ParseError struct {
	Message string
	Cause   error
}

func (e ParseError) Error() string {
	return messageOrCause(e.Message, e.Cause)
}

func (e ParseError) Unwrap() error {
	return e.Cause
}

func messageOrCause(msg string, cause error) string {
	if msg != "" {
		return msg
	}
	if cause != nil {
		return cause.Error()
	}
	return ""
}
