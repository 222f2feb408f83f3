package dto

import "github.com/google/uuid"

// ── Shared references ─────────────────────────────────────────────────────────
// Compact views of reference entities embedded in read models.

type PorterRef struct {
	ID          uuid.UUID `json:"id"`
	UID         string    `json:"uid"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
}

type CarrierRef struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	CapacityKg int       `json:"capacityKg"`
}

type LocationRef struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// TotalPages returns the page count for total rows at limit rows per page.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
