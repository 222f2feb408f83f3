package service

import (
	"errors"
	"fmt"

	"github.com/abhishek972986/porter-managment/internal/apierror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notFound turns gorm.ErrRecordNotFound into a 404 with msg and leaves
// other errors untouched.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(msg)
	}
	return err
}

// parseID parses a UUID supplied by the client.
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierror.Validation([]apierror.FieldError{
			{Field: field, Message: fmt.Sprintf("%s must be a valid id", field)},
		})
	}
	return id, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
