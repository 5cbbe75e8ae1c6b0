package ds

// Справочник магазинов
type Store struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"type:varchar(255);not null"`
	AccountExecutiveID *uint  `gorm:"index"`
	IsActive           bool   `gorm:"not null"`

	AccountExecutive *User `gorm:"foreignKey:AccountExecutiveID;constraint:OnDelete:RESTRICT"`
}

// Справочник товаров
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Description string `gorm:"type:varchar(255);not null"`
	Barcode     string `gorm:"type:varchar(255)"`
	SapCode     string `gorm:"type:varchar(255)"`
	Type        string `gorm:"type:varchar(255)"` // HC, FC, F&R, O
	IsPromo     bool   `gorm:"not null"`
}
