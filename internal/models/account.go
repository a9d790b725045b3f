package models

import "gorm.io/gorm"

// Account owns imported trades. Only real (live) accounts pay commission;
// paper accounts always see zero regardless of instrument rates.
type Account struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
	Real bool   `json:"real"`
}
