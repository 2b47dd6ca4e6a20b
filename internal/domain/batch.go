package domain

import "time"

// BatchGroup ties several task ids together for collective progress and
// download. It is bookkeeping only and never drives task lifecycle.
type BatchGroup struct {
	BatchID   string    `json:"batchId" gorm:"primaryKey;column:batch_id"`
	TaskIDs   []string  `json:"taskIds" gorm:"serializer:json;column:task_ids"`
	CreatedAt time.Time `json:"createdAt"`
}

func (BatchGroup) TableName() string { return "batch_groups" }
