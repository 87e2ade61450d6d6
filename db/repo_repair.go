package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"school_equipment_portal/models"
)

// CreateRepair opens a damage report and forces the equipment to
// under_repair, regardless of any outstanding requests.
func (r *Repo) CreateRepair(ctx context.Context, equipmentID, reporterID uint, description string) (*models.Repair, error) {
	var rep *models.Repair
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq models.Equipment
		if err := tx.First(&eq, "id = ?", equipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		rep = &models.Repair{
			EquipmentID:      equipmentID,
			ReportedByUserID: reporterID,
			Description:      description,
			ReportDate:       today(),
			RepairStatus:     models.RepairPending,
		}
		if err := tx.Create(rep).Error; err != nil {
			return err
		}

		return tx.Model(&models.Equipment{}).
			Where("id = ?", equipmentID).
			Update("status", models.EquipmentUnderRepair).Error
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *Repo) FindRepairByID(ctx context.Context, id uint) (*models.Repair, error) {
	var rep models.Repair
	if err := r.DB.WithContext(ctx).First(&rep, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *Repo) ListRepairs(ctx context.Context, skip, limit int) ([]models.Repair, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	var reps []models.Repair
	err := r.DB.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&reps).Error
	return reps, err
}

// CompleteRepair: pending -> completed. The equipment goes straight back to
// available; a second still-open report on the same item does not block it.
func (r *Repo) CompleteRepair(ctx context.Context, repairID uint) (*models.Repair, error) {
	var rep models.Repair
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rep, "id = ?", repairID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if rep.RepairStatus != models.RepairPending {
			return ErrNotPending
		}

		var eq models.Equipment
		if err := tx.First(&eq, "id = ?", rep.EquipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := today()
		rep.RepairStatus = models.RepairCompleted
		rep.CompletedDate = &now
		if err := tx.Save(&rep).Error; err != nil {
			return err
		}

		return tx.Model(&models.Equipment{}).
			Where("id = ?", eq.ID).
			Update("status", models.EquipmentAvailable).Error
	})
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
