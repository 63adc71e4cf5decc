package models

// Category is a user-defined transaction category.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;not null" json:"name"`
}

// Subcategory refines a parent category by name.
type Subcategory struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:64;not null" json:"name"`
	ParentCategory string `gorm:"size:64;index;not null" json:"parent_category"`
}
