package internal

import "fmt"

// ConfigurationError reports an unusable configuration value: a missing or
// malformed parameter, an unknown service key or mode, or conflicting flags.
type ConfigurationError struct {
	Parameter string
	Message   string
	Err       error
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Parameter != "" {
		msg = fmt.Sprintf("%s: %s", e.Parameter, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return "configuration error: " + msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func NewConfigurationError(parameter, message string, err error) *ConfigurationError {
	return &ConfigurationError{Parameter: parameter, Message: message, Err: err}
}
