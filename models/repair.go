package models

import "time"

const RepairTable = "repairs"

const (
	RepairPending   = "pending"
	RepairCompleted = "completed"
)

// Repair is a damage report. Opening one forces the equipment to
// under_repair; completing it forces the equipment back to available.
type Repair struct {
	ID               uint       `gorm:"primaryKey" json:"repair_id"`
	EquipmentID      uint       `gorm:"index;not null" json:"equipment_id"`
	ReportedByUserID uint       `gorm:"index;not null" json:"reported_by_user_id"`
	Description      string     `gorm:"type:text" json:"description"`
	ReportDate       time.Time  `gorm:"type:date" json:"report_date"`
	RepairStatus     string     `gorm:"size:20;index;not null;default:'pending'" json:"repair_status"`
	CompletedDate    *time.Time `gorm:"type:date" json:"completed_date,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Repair) TableName() string { return RepairTable }
