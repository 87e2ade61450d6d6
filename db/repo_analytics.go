package db

import (
	"context"

	"school_equipment_portal/models"
)

type UsageRow struct {
	EquipmentID  uint   `json:"equipment_id"`
	Name         string `json:"name"`
	RequestCount int64  `json:"request_count"`
}

// UsageAnalytics ranks equipment by how often it has been requested.
// Items with no requests at all are left out, matching the inner join.
func (r *Repo) UsageAnalytics(ctx context.Context) ([]UsageRow, error) {
	var rows []UsageRow
	err := r.DB.WithContext(ctx).
		Table(models.EquipmentTable+" e").
		Select("e.id AS equipment_id, e.name AS name, COUNT(q.id) AS request_count").
		Joins("JOIN "+models.RequestTable+" q ON q.equipment_id = e.id").
		Group("e.id, e.name").
		Order("request_count DESC").
		Scan(&rows).Error
	return rows, err
}
