package models

import "time"

const EquipmentTable = "equipment"

// Equipment lifecycle statuses. on_loan is part of the enum but nothing
// flips it automatically; only the repair flow rewrites status.
const (
	EquipmentAvailable   = "available"
	EquipmentOnLoan      = "on_loan"
	EquipmentUnderRepair = "under_repair"
)

type Equipment struct {
	ID                uint      `gorm:"primaryKey" json:"equipment_id"`
	Name              string    `gorm:"size:200;index;not null" json:"name"`
	Category          string    `gorm:"size:100;index" json:"category"`
	Condition         string    `gorm:"size:100" json:"condition"`
	TotalQuantity     int       `gorm:"not null" json:"total_quantity"`
	AvailableQuantity int       `gorm:"not null" json:"available_quantity"`
	Status            string    `gorm:"size:20;not null;default:'available'" json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (Equipment) TableName() string { return EquipmentTable }
