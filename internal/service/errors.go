package service

import (
	"errors"
	"fmt"

	"github.com/AleXx313/shareit/internal/apperr"
	"github.com/AleXx313/shareit/internal/database"
)

// The helpers below translate store sentinels into domain error kinds.
// Anything that is not a recognized sentinel is passed through wrapped
// and ends up as an internal error at the transport layer.

func userErr(err error, id int64) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("user with id %d not found", id)
	}
	return fmt.Errorf("get user: %w", err)
}

func itemErr(err error, id int64) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("item with id %d not found", id)
	}
	return fmt.Errorf("get item: %w", err)
}

func bookingErr(err error, id int64) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("booking with id %d not found", id)
	}
	return fmt.Errorf("get booking: %w", err)
}

func requestErr(err error, id int64) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("request with id %d not found", id)
	}
	return fmt.Errorf("get request: %w", err)
}

func validatePaging(from, size int) error {
	if from < 0 || size < 1 {
		return apperr.InvalidRequest("invalid pagination parameters: from=%d, size=%d", from, size)
	}
	return nil
}
