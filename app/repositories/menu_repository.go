package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mymenu/mymenu/app/models"
)

// MenuRepository handles database operations for Menu and Category.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// Create persists a new menu.
func (r *MenuRepository) Create(menu *models.Menu) error {
	return r.db.Create(menu).Error
}

// FindByID loads a bare menu row.
func (r *MenuRepository) FindByID(id string) (models.Menu, error) {
	var menu models.Menu
	err := r.db.Where("id = ?", id).First(&menu).Error
	return menu, err
}

// FindWithRestaurant loads a menu with its owning restaurant preloaded, for
// ownership checks.
func (r *MenuRepository) FindWithRestaurant(id string) (models.Menu, error) {
	var menu models.Menu
	err := r.db.Preload("Restaurant").Where("id = ?", id).First(&menu).Error
	return menu, err
}

// FindTree loads a menu with categories and dishes preloaded.
func (r *MenuRepository) FindTree(id string) (models.Menu, error) {
	var menu models.Menu
	err := r.db.
		Preload("Categories.Dishes.Dish").
		Where("id = ?", id).
		First(&menu).Error
	return menu, err
}

// ListByRestaurant returns all menus of one restaurant with categories
// preloaded.
func (r *MenuRepository) ListByRestaurant(restaurantID string) ([]models.Menu, error) {
	var menus []models.Menu
	err := r.db.
		Preload("Categories").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at asc").
		Find(&menus).Error
	return menus, err
}

// Update persists changes to an existing menu. Preloaded associations are
// not written back.
func (r *MenuRepository) Update(menu *models.Menu) error {
	return r.db.Omit(clause.Associations).Save(menu).Error
}

// Delete removes a menu, its categories and their dish links. The cascade is
// explicit rather than left to FK constraints, which SQLite only enforces
// behind a pragma.
func (r *MenuRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.Category{}).Select("id").Where("menu_id = ?", id)
		if err := tx.Where("category_id IN (?)", sub).
			Delete(&models.DishCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_id = ?", id).
			Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Menu{}).Error
	})
}

// ------------------- Categories -------------------

// CreateCategory persists a new category.
func (r *MenuRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

// FindCategory loads a bare category row.
func (r *MenuRepository) FindCategory(id string) (models.Category, error) {
	var category models.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	return category, err
}

// FindCategoryWithChain loads a category with its menu and restaurant
// preloaded, for ownership checks.
func (r *MenuRepository) FindCategoryWithChain(id string) (models.Category, error) {
	var category models.Category
	err := r.db.
		Preload("Menu.Restaurant").
		Where("id = ?", id).
		First(&category).Error
	return category, err
}

// FindCategoriesWithChain loads several categories with their ownership
// chains in one query. Missing IDs are simply absent from the result.
func (r *MenuRepository) FindCategoriesWithChain(ids []string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.
		Preload("Menu.Restaurant").
		Where("id IN ?", ids).
		Find(&categories).Error
	return categories, err
}

// UpdateCategory persists changes to an existing category. Preloaded
// associations are not written back.
func (r *MenuRepository) UpdateCategory(category *models.Category) error {
	return r.db.Omit(clause.Associations).Save(category).Error
}

// DeleteCategory removes a category and its dish join rows. Dishes left
// without any category become unreachable rather than deleted.
func (r *MenuRepository) DeleteCategory(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).
			Delete(&models.DishCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Category{}).Error
	})
}
