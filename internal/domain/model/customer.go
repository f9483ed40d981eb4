package model

// Customerの同一性は (name, phone) の組。複合ユニークでfind-or-createの競合を防ぐ
type Customer struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:varchar(64);not null;index:idx_customers_identity,unique" json:"name"`
	Phone string `gorm:"type:varchar(12);not null;index:idx_customers_identity,unique" json:"phone"`
}
