package service

import (
	"errors"
	"fmt"
)

var ErrParameterNotFound = errors.New("parameter not found")

type ErrParameterAlreadyExists struct {
	Name string
}

func (e ErrParameterAlreadyExists) Error() string {
	return fmt.Sprintf("parameter %q already exists", e.Name)
}

func NewErrParameterAlreadyExists(name string) *ErrParameterAlreadyExists {
	return &ErrParameterAlreadyExists{Name: name}
}

type ErrInvalidParameterType struct {
	Type string
}

func (e ErrInvalidParameterType) Error() string {
	return fmt.Sprintf("invalid parameter type %q", e.Type)
}
