package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mymenu/mymenu/app/models"
)

// DishRepository handles database operations for Dish and its category links.
type DishRepository struct {
	db *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{db: db}
}

// Create persists a dish and links it to the given categories in one
// transaction.
func (r *DishRepository) Create(dish *models.Dish, categoryIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dish).Error; err != nil {
			return err
		}
		for _, cid := range categoryIDs {
			link := models.DishCategory{DishID: dish.ID, CategoryID: cid}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID loads a bare dish row.
func (r *DishRepository) FindByID(id string) (models.Dish, error) {
	var dish models.Dish
	err := r.db.Where("id = ?", id).First(&dish).Error
	return dish, err
}

// FindWithChain loads a dish with every linked category's ownership chain
// preloaded. Authorization walks all of them.
func (r *DishRepository) FindWithChain(id string) (models.Dish, error) {
	var dish models.Dish
	err := r.db.
		Preload("Categories.Category.Menu.Restaurant").
		Where("id = ?", id).
		First(&dish).Error
	return dish, err
}

// Update persists changes to an existing dish. When categoryIDs is non-nil
// the category links are replaced wholesale.
func (r *DishRepository) Update(dish *models.Dish, categoryIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(dish).Error; err != nil {
			return err
		}
		if categoryIDs == nil {
			return nil
		}
		if err := tx.Where("dish_id = ?", dish.ID).
			Delete(&models.DishCategory{}).Error; err != nil {
			return err
		}
		for _, cid := range categoryIDs {
			link := models.DishCategory{DishID: dish.ID, CategoryID: cid}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a dish and its category links.
func (r *DishRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", id).
			Delete(&models.DishCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Dish{}).Error
	})
}
