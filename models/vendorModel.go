package models

import "gorm.io/gorm"

type Vendor struct {
	gorm.Model
	StoreName string  `json:"storeName" gorm:"not null"`
	Bio       string  `json:"bio,omitempty"`
	Rating    float64 `json:"rating" gorm:"default:0"`
}
