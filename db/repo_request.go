package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"school_equipment_portal/models"
)

// CreateRequest files a borrow request. The item must exist and still have
// stock; the quantity itself only moves on approval.
func (r *Repo) CreateRequest(ctx context.Context, userID, equipmentID uint, borrowDate, expectedReturn time.Time) (*models.Request, error) {
	var req *models.Request
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq models.Equipment
		if err := tx.First(&eq, "id = ?", equipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if eq.AvailableQuantity <= 0 {
			return ErrUnavailable
		}

		req = &models.Request{
			UserID:             userID,
			EquipmentID:        equipmentID,
			Status:             models.RequestPending,
			RequestDate:        today(),
			BorrowDate:         borrowDate,
			ExpectedReturnDate: expectedReturn,
		}
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *Repo) FindRequestByID(ctx context.Context, id uint) (*models.Request, error) {
	var req models.Request
	if err := r.DB.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *Repo) ListRequestsByUser(ctx context.Context, userID uint) ([]models.Request, error) {
	var reqs []models.Request
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&reqs).Error
	return reqs, err
}

func (r *Repo) ListRequestsByStatus(ctx context.Context, status string) ([]models.Request, error) {
	var reqs []models.Request
	err := r.DB.WithContext(ctx).
		Where("status = ?", status).
		Order("id").
		Find(&reqs).Error
	return reqs, err
}

// ApproveRequest: pending -> approved. The admin supplies the official
// return date, and one unit of stock is taken.
func (r *Repo) ApproveRequest(ctx context.Context, requestID, adminID uint, expectedReturn time.Time) (*models.Request, error) {
	var req models.Request
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.Status != models.RequestPending {
			return ErrNotPending
		}

		var eq models.Equipment
		if err := tx.First(&eq, "id = ?", req.EquipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if eq.AvailableQuantity <= 0 {
			return ErrUnavailable
		}

		req.Status = models.RequestApproved
		req.ApprovedByUserID = &adminID
		req.ExpectedReturnDate = expectedReturn
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		return tx.Model(&models.Equipment{}).
			Where("id = ?", eq.ID).
			Update("available_quantity", gorm.Expr("available_quantity - 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// RejectRequest: pending -> rejected. No quantity change; the approver
// column records who decided.
func (r *Repo) RejectRequest(ctx context.Context, requestID, adminID uint) (*models.Request, error) {
	var req models.Request
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.Status != models.RequestPending {
			return ErrNotPending
		}
		req.Status = models.RequestRejected
		req.ApprovedByUserID = &adminID
		return tx.Save(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ReturnRequest: approved -> returned. Stock goes back by one; there is no
// ceiling check against total_quantity.
func (r *Repo) ReturnRequest(ctx context.Context, requestID uint) (*models.Request, error) {
	var req models.Request
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.Status != models.RequestApproved {
			return ErrNotApproved
		}

		var eq models.Equipment
		if err := tx.First(&eq, "id = ?", req.EquipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := today()
		req.Status = models.RequestReturned
		req.ActualReturnDate = &now
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		return tx.Model(&models.Equipment{}).
			Where("id = ?", eq.ID).
			Update("available_quantity", gorm.Expr("available_quantity + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CheckOverdue is the manually triggered sweep: every approved request past
// its expected return date flips to overdue in one commit. Repeat calls are
// no-ops for already flipped rows.
func (r *Repo) CheckOverdue(ctx context.Context) ([]models.Request, error) {
	var flipped []models.Request
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("status = ? AND expected_return_date < ?", models.RequestApproved, today()).
			Find(&flipped).Error; err != nil {
			return err
		}
		if len(flipped) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(flipped))
		for i := range flipped {
			ids = append(ids, flipped[i].ID)
			flipped[i].Status = models.RequestOverdue
		}
		return tx.Model(&models.Request{}).
			Where("id IN ?", ids).
			Update("status", models.RequestOverdue).Error
	})
	if err != nil {
		return nil, err
	}
	return flipped, nil
}
