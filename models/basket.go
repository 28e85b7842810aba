package models

// Basket holds the set of products a user has put aside. The row is keyed
// by username rather than user id so it can be resolved straight from the
// authenticated principal; the unique index guarantees one row per user.
// Membership is presence-only, there is no quantity.
type Basket struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	User     string    `gorm:"size:50;uniqueIndex;not null" json:"user"`
	Products []Product `gorm:"many2many:basket_products" json:"products"`
}
