package models

import "time"

const RequestTable = "requests"

// Request statuses. Transitions are one-directional:
// pending -> approved | rejected; approved -> returned | overdue.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
	RequestReturned = "returned"
	RequestOverdue  = "overdue"
)

type Request struct {
	ID          uint   `gorm:"primaryKey" json:"request_id"`
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	EquipmentID uint   `gorm:"index;not null" json:"equipment_id"`
	Status      string `gorm:"size:20;index;not null;default:'pending'" json:"status"`

	RequestDate        time.Time  `gorm:"type:date" json:"request_date"`
	BorrowDate         time.Time  `gorm:"type:date" json:"borrow_date"`
	ExpectedReturnDate time.Time  `gorm:"type:date;index" json:"expected_return_date"`
	ActualReturnDate   *time.Time `gorm:"type:date" json:"actual_return_date,omitempty"`

	ApprovedByUserID *uint `json:"approved_by_user_id,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Request) TableName() string { return RequestTable }
