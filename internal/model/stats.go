package model

import "time"

// StatsSnapshot is one periodic sample of site activity, shown on the
// master dashboard as a history series.
type StatsSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Resources int64     `json:"resources"`
	Feedback  int64     `json:"feedback"`
	Staff     int64     `json:"staff"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}
