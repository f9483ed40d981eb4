package model

import "time"

// Timestampは作成時刻。明細やnotesの更新でも進める
type Order struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
	CustomerID int64     `gorm:"not null;index" json:"customer_id"`
	Notes      string    `gorm:"type:text" json:"notes"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"-"`
}
