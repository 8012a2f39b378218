package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant is the root of the ownership chain: every menu, category and
// dish traces back to exactly one restaurant, and every restaurant to exactly
// one owning user.
type Restaurant struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Location    string       `gorm:"size:255" json:"location"`
	UserID      string       `gorm:"size:36;index;not null" json:"userId"`
	Menus       []Menu       `gorm:"constraint:OnDelete:CASCADE" json:"menus,omitempty"`
	AccessLinks []AccessLink `gorm:"constraint:OnDelete:CASCADE" json:"accessLinks,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (r *Restaurant) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// AccessLink grants anonymous read access to one restaurant's menu tree via
// its share token. One link is created with each restaurant; the schema
// allows more.
type AccessLink struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	RestaurantID string    `gorm:"size:36;index;not null" json:"restaurantId"`
	ShareToken   string    `gorm:"uniqueIndex;size:32;not null" json:"shareToken"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (l *AccessLink) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
