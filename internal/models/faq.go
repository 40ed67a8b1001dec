package models

import "github.com/jinzhu/gorm"

// FAQ represents a canned answer matched by a regular expression pattern.
// TenantID is optional; nil entries apply globally.
type FAQ struct {
	gorm.Model
	TenantID *uint  `json:"tenant_id"`
	Language string `gorm:"not null;default:'es'" json:"language"`
	Pattern  string `gorm:"not null" json:"pattern"`
	Answer   string `gorm:"not null" json:"answer"`
}
