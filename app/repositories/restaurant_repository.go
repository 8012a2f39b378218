package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mymenu/mymenu/app/models"
)

// RestaurantRepository handles database operations for Restaurant and its
// AccessLinks.
type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// Create persists a restaurant and its first access link in one transaction.
// The link must carry a pre-generated share token.
func (r *RestaurantRepository) Create(restaurant *models.Restaurant, link *models.AccessLink) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(restaurant).Error; err != nil {
			return err
		}
		link.RestaurantID = restaurant.ID
		if err := tx.Create(link).Error; err != nil {
			return err
		}
		restaurant.AccessLinks = []models.AccessLink{*link}
		return nil
	})
}

// ListByUser returns all restaurants owned by userID with menus and access
// links preloaded, newest first.
func (r *RestaurantRepository) ListByUser(userID string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.
		Preload("Menus").
		Preload("AccessLinks").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&restaurants).Error
	return restaurants, err
}

// FindByID loads a bare restaurant row.
func (r *RestaurantRepository) FindByID(id string) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.Where("id = ?", id).First(&restaurant).Error
	return restaurant, err
}

// FindTree loads a restaurant with its full menu tree and access links.
func (r *RestaurantRepository) FindTree(id string) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.
		Preload("Menus.Categories.Dishes.Dish").
		Preload("AccessLinks").
		Where("id = ?", id).
		First(&restaurant).Error
	return restaurant, err
}

// FindByShareToken resolves a share token to its restaurant's full menu tree.
func (r *RestaurantRepository) FindByShareToken(token string) (models.Restaurant, error) {
	var link models.AccessLink
	if err := r.db.Where("share_token = ?", token).First(&link).Error; err != nil {
		return models.Restaurant{}, err
	}
	return r.FindTree(link.RestaurantID)
}

// Update persists changes to an existing restaurant. Preloaded associations
// are not written back.
func (r *RestaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Omit(clause.Associations).Save(restaurant).Error
}

// Delete removes a restaurant with its access links, menus, categories and
// dish links. The cascade is explicit rather than left to FK constraints,
// which SQLite only enforces behind a pragma.
func (r *RestaurantRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		menuIDs := tx.Model(&models.Menu{}).Select("id").Where("restaurant_id = ?", id)
		categoryIDs := tx.Model(&models.Category{}).Select("id").
			Where("menu_id IN (?)", menuIDs)

		if err := tx.Where("category_id IN (?)", categoryIDs).
			Delete(&models.DishCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_id IN (?)", menuIDs).
			Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).
			Delete(&models.Menu{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).
			Delete(&models.AccessLink{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Restaurant{}).Error
	})
}
