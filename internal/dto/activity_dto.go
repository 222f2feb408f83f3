package dto

import (
	"time"

	"github.com/google/uuid"
)

type ActivityResponse struct {
	ID          uuid.UUID      `json:"id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	User        *UserRef       `json:"user,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}
