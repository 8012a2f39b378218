package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Menu belongs to one restaurant.
type Menu struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	RestaurantID string     `gorm:"size:36;index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
	Categories   []Category `gorm:"constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (m *Menu) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Category belongs to one menu.
type Category struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	MenuID    string         `gorm:"size:36;index;not null" json:"menuId"`
	Menu      Menu           `json:"-"`
	Dishes    []DishCategory `gorm:"constraint:OnDelete:CASCADE" json:"dishes,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (c *Category) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Dish may appear in several categories through DishCategory. Its owner is
// derived transitively: dish → category → menu → restaurant → user.
type Dish struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Image       string         `gorm:"size:512" json:"image"`
	SpiceLevel  int            `gorm:"default:0" json:"spiceLevel"`
	Categories  []DishCategory `gorm:"constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (d *Dish) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DishCategory is the dish ↔ category join row.
type DishCategory struct {
	DishID     string   `gorm:"primaryKey;size:36" json:"dishId"`
	CategoryID string   `gorm:"primaryKey;size:36" json:"categoryId"`
	Dish       Dish     `json:"dish,omitempty"`
	Category   Category `json:"category,omitempty"`
}
