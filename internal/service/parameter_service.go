package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/haatos/provider-ci/internal/security"
	"github.com/haatos/provider-ci/internal/store"
)

type ParameterStore interface {
	ReadParameterByName(context.Context, string) (*store.Parameter, error)
	CreateParameter(context.Context, *store.Parameter) error
	PutParameter(context.Context, *store.Parameter) (int64, error)
	DeleteParameter(context.Context, string) error
}

type ParameterService struct {
	store        ParameterStore
	aesEncrypter security.Encrypter
	now          func() time.Time
}

func NewParameterService(
	store ParameterStore,
	aesEncrypter security.Encrypter,
) *ParameterService {
	return &ParameterService{store: store, aesEncrypter: aesEncrypter, now: time.Now}
}

func ParseParameterType(s string) (store.ParameterType, error) {
	switch t := store.ParameterType(s); t {
	case store.ParameterString, store.ParameterStringList, store.ParameterSecureString:
		return t, nil
	case "":
		return store.ParameterString, nil
	}
	return "", &ErrInvalidParameterType{Type: s}
}

// PutParameter stores value under name and returns the new version. An
// existing parameter is only replaced when overwrite is set.
func (s *ParameterService) PutParameter(
	ctx context.Context,
	name, value string,
	parameterType store.ParameterType,
	overwrite bool,
) (int64, error) {
	if _, err := ParseParameterType(string(parameterType)); err != nil {
		return 0, err
	}

	if parameterType == store.ParameterSecureString {
		var err error
		value, err = s.aesEncrypter.EncryptAES(value)
		if err != nil {
			return 0, err
		}
	}

	p := &store.Parameter{
		Name:      name,
		Value:     value,
		Type:      parameterType,
		Version:   1,
		UpdatedOn: s.now().UTC(),
	}
	if overwrite {
		return s.store.PutParameter(ctx, p)
	}
	if err := s.store.CreateParameter(ctx, p); err != nil {
		if errors.Is(err, store.ErrParameterExists) {
			return 0, NewErrParameterAlreadyExists(name)
		}
		return 0, err
	}
	return p.Version, nil
}

// GetParameter returns the named parameter. SecureString values stay
// encrypted unless withDecryption is set.
func (s *ParameterService) GetParameter(
	ctx context.Context,
	name string,
	withDecryption bool,
) (*store.Parameter, error) {
	p, err := s.store.ReadParameterByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParameterNotFound
		}
		return nil, err
	}
	if p.Type == store.ParameterSecureString && withDecryption {
		plaintext, err := s.aesEncrypter.DecryptAES(p.Value)
		if err != nil {
			return nil, err
		}
		p.Value = string(plaintext)
	}
	return p, nil
}

func (s *ParameterService) DeleteParameter(ctx context.Context, name string) error {
	if _, err := s.store.ReadParameterByName(ctx, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrParameterNotFound
		}
		return err
	}
	return s.store.DeleteParameter(ctx, name)
}
