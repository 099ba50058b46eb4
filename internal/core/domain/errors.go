package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDeckNotFound       = errors.New("deck not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDocumentOpen       = errors.New("document open failure")
	ErrEmptyText          = errors.New("empty extracted text")
	ErrRemoteFetch        = errors.New("remote fetch failure")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrTemporary          = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
