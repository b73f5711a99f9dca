package store

import (
	"errors"
	"time"
)

var ErrParameterExists = errors.New("parameter exists")

type ParameterType string

const (
	ParameterString       ParameterType = "String"
	ParameterStringList   ParameterType = "StringList"
	ParameterSecureString ParameterType = "SecureString"
)

// Parameter is a named configuration value. SecureString values are stored
// encrypted.
type Parameter struct {
	Name      string        `json:"name"`
	Value     string        `json:"value"`
	Type      ParameterType `json:"type"`
	Version   int64         `json:"version"`
	UpdatedOn time.Time     `json:"updated_on"`
}
