package dto

import (
	"time"

	"github.com/google/uuid"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreatePorterRequest struct {
	UID         string `json:"uid"         validate:"required,min=1,max=50"`
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Designation string `json:"designation" validate:"max=100"`
	AccountNo   string `json:"accountNo"   validate:"max=50"`
	FatherName  string `json:"fatherName"  validate:"max=100"`
}

type UpdatePorterRequest struct {
	UID         *string `json:"uid"         validate:"omitempty,min=1,max=50"`
	Name        *string `json:"name"        validate:"omitempty,min=2,max=100"`
	Designation *string `json:"designation" validate:"omitempty,max=100"`
	AccountNo   *string `json:"accountNo"   validate:"omitempty,max=50"`
	FatherName  *string `json:"fatherName"  validate:"omitempty,max=100"`
	Active      *bool   `json:"active"`
}

type PorterFilter struct {
	Active string `form:"active"` // "true" | "false" | empty = all
	Search string `form:"search"`
	Field  string `form:"field"  validate:"omitempty,oneof=name uid designation"` // restricts search to one column
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type PorterResponse struct {
	ID          uuid.UUID `json:"id"`
	UID         string    `json:"uid"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	AccountNo   string    `json:"accountNo"`
	FatherName  string    `json:"fatherName"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PorterListResponse struct {
	Porters     []PorterResponse `json:"porters"`
	Total       int64            `json:"total"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
}
