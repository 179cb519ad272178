package entity

import "time"

// AppSetting is a generic key/value configuration row. System settings
// live under a single fixed key as a JSON document.
type AppSetting struct {
	Key       string    `gorm:"size:100;primaryKey" json:"key"`
	Value     string    `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
