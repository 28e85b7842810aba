package models

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"size:50;unique;not null" json:"name"`
	Slug     string    `gorm:"size:60;uniqueIndex;not null" json:"slug"` // always derived from Name, never client-supplied
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}
