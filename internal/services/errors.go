package services

import (
	"errors"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/repositories"
)

// notFoundOr turns a repository miss into a caller-facing not-found error
// and passes every other error through unchanged.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.Wrap(apperrors.KindNotFound, msg, err)
	}
	return err
}
