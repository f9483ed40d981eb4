package model

// 価格は保存時に小数2桁へ丸める
type Item struct {
	ID    int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string  `gorm:"type:varchar(64);not null;index" json:"name"`
	Price float64 `gorm:"not null" json:"price"`
}
