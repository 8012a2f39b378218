package seeders

import (
	"time"

	"gorm.io/gorm"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/pkg/token"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo creates one verified owner with a small restaurant tree so a
// fresh install has something to click through. Running it twice is a no-op.
func SeedDemo(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("email = ?", "demo@mymenu.app").Count(&count)
	if count > 0 {
		return nil
	}

	owner := models.User{
		Email:      "demo@mymenu.app",
		FullName:   "Demo Owner",
		Country:    "IN",
		IsVerified: true,
	}
	if err := db.Create(&owner).Error; err != nil {
		return err
	}

	restaurant := models.Restaurant{
		Name:     "Spice Route",
		Location: "Bengaluru",
		UserID:   owner.ID,
	}
	if err := db.Create(&restaurant).Error; err != nil {
		return err
	}

	link := models.AccessLink{
		RestaurantID: restaurant.ID,
		ShareToken:   token.Share(),
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&link).Error; err != nil {
		return err
	}

	menu := models.Menu{
		Name:         "Dinner",
		Description:  "Evening menu",
		RestaurantID: restaurant.ID,
	}
	if err := db.Create(&menu).Error; err != nil {
		return err
	}

	starters := models.Category{Name: "Starters", MenuID: menu.ID}
	mains := models.Category{Name: "Mains", MenuID: menu.ID}
	for _, c := range []*models.Category{&starters, &mains} {
		if err := db.Create(c).Error; err != nil {
			return err
		}
	}

	dishes := []struct {
		dish     models.Dish
		category string
	}{
		{models.Dish{Name: "Paneer Tikka", Description: "Charred cottage cheese", Price: 260, SpiceLevel: 2}, starters.ID},
		{models.Dish{Name: "Butter Chicken", Description: "Slow-simmered tomato gravy", Price: 420, SpiceLevel: 1}, mains.ID},
		{models.Dish{Name: "Andhra Chilli Chicken", Description: "Not for the faint-hearted", Price: 380, SpiceLevel: 5}, mains.ID},
	}
	for _, d := range dishes {
		if err := db.Create(&d.dish).Error; err != nil {
			return err
		}
		linkRow := models.DishCategory{DishID: d.dish.ID, CategoryID: d.category}
		if err := db.Create(&linkRow).Error; err != nil {
			return err
		}
	}

	return nil
}
