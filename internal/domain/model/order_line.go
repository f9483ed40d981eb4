package model

// 注文の1単位＝1行。数量は (order_id, item_id) の行数で導出する
type OrderLine struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`
	ItemID  int64 `gorm:"not null;index" json:"item_id"`

	Order *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT" json:"-"`
	Item  *Item  `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT" json:"-"`
}
