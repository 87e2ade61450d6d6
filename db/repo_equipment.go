package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"school_equipment_portal/models"
)

type EquipmentInput struct {
	Name          string
	Category      string
	Condition     string
	TotalQuantity int
	Status        string
}

// CreateEquipment inserts a new item; the whole stock starts available.
func (r *Repo) CreateEquipment(ctx context.Context, in EquipmentInput) (*models.Equipment, error) {
	if in.Status == "" {
		in.Status = models.EquipmentAvailable
	}
	eq := &models.Equipment{
		Name:              in.Name,
		Category:          in.Category,
		Condition:         in.Condition,
		TotalQuantity:     in.TotalQuantity,
		AvailableQuantity: in.TotalQuantity,
		Status:            in.Status,
	}
	if err := r.DB.WithContext(ctx).Create(eq).Error; err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *Repo) FindEquipmentByID(ctx context.Context, id uint) (*models.Equipment, error) {
	var eq models.Equipment
	if err := r.DB.WithContext(ctx).First(&eq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &eq, nil
}

func (r *Repo) ListEquipment(ctx context.Context, skip, limit int) ([]models.Equipment, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	var items []models.Equipment
	err := r.DB.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&items).Error
	return items, err
}

// UpdateEquipment rewrites the descriptive fields. A total_quantity change
// keeps the outstanding-loan count fixed: available = new total - on loan,
// floored at zero.
func (r *Repo) UpdateEquipment(ctx context.Context, id uint, in EquipmentInput) (*models.Equipment, error) {
	var eq models.Equipment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&eq, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		onLoan := eq.TotalQuantity - eq.AvailableQuantity

		eq.Name = in.Name
		eq.Category = in.Category
		eq.Condition = in.Condition
		if in.Status != "" {
			eq.Status = in.Status
		}
		if in.TotalQuantity != eq.TotalQuantity {
			eq.TotalQuantity = in.TotalQuantity
			avail := in.TotalQuantity - onLoan
			if avail < 0 {
				avail = 0
			}
			eq.AvailableQuantity = avail
		}
		return tx.Save(&eq).Error
	})
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

// DeleteEquipment is unconditional; existing requests and repairs keep
// their equipment_id with no cascade check.
func (r *Repo) DeleteEquipment(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Equipment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
