package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types.
const (
	ActivityAttendanceCreated  = "attendance_created"
	ActivityAttendanceUpdated  = "attendance_updated"
	ActivityAttendanceDeleted  = "attendance_deleted"
	ActivityPorterCreated      = "porter_created"
	ActivityPorterUpdated      = "porter_updated"
	ActivityPorterDeleted      = "porter_deleted"
	ActivityLocationCreated    = "location_created"
	ActivityLocationUpdated    = "location_updated"
	ActivityLocationDeleted    = "location_deleted"
	ActivityCarrierCreated     = "carrier_created"
	ActivityCarrierUpdated     = "carrier_updated"
	ActivityCarrierDeleted     = "carrier_deleted"
	ActivityCommuteCostCreated = "commute_cost_created"
	ActivityCommuteCostUpdated = "commute_cost_updated"
	ActivityCommuteCostDeleted = "commute_cost_deleted"
	ActivityUserLogin          = "user_login"
	ActivityReportGenerated    = "report_generated"
	ActivityPayrollPaid        = "payroll_paid"
	ActivityPayrollUnpaid      = "payroll_unpaid"
)

// Activity is an append-only audit record. Rows are never updated or deleted.
type Activity struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string            `gorm:"type:varchar(40);not null;index" json:"type"`
	Description string            `gorm:"not null" json:"description"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null" json:"userId"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"index" json:"createdAt"`
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
