package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/repositories"
)

// OwnershipService walks the dish → category → menu → restaurant → user
// chain to answer "may this user touch this entity". Every mutating
// operation authorizes through here before writing.
type OwnershipService struct {
	restaurants *repositories.RestaurantRepository
	menus       *repositories.MenuRepository
	dishes      *repositories.DishRepository
}

func NewOwnershipService(
	restaurants *repositories.RestaurantRepository,
	menus *repositories.MenuRepository,
	dishes *repositories.DishRepository,
) *OwnershipService {
	return &OwnershipService{restaurants: restaurants, menus: menus, dishes: dishes}
}

// AuthorizeRestaurant returns the restaurant if userID owns it.
func (s *OwnershipService) AuthorizeRestaurant(userID, restaurantID string) (models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(restaurantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Restaurant{}, ErrNotFound
	} else if err != nil {
		return models.Restaurant{}, fmt.Errorf("ownership: restaurant: %w", err)
	}
	if restaurant.UserID != userID {
		return models.Restaurant{}, ErrForbidden
	}
	return restaurant, nil
}

// AuthorizeMenu returns the menu if userID owns its restaurant.
func (s *OwnershipService) AuthorizeMenu(userID, menuID string) (models.Menu, error) {
	menu, err := s.menus.FindWithRestaurant(menuID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Menu{}, ErrNotFound
	} else if err != nil {
		return models.Menu{}, fmt.Errorf("ownership: menu: %w", err)
	}
	if menu.Restaurant.UserID != userID {
		return models.Menu{}, ErrForbidden
	}
	return menu, nil
}

// AuthorizeCategory returns the category if userID owns it through its menu.
func (s *OwnershipService) AuthorizeCategory(userID, categoryID string) (models.Category, error) {
	category, err := s.menus.FindCategoryWithChain(categoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, ErrNotFound
	} else if err != nil {
		return models.Category{}, fmt.Errorf("ownership: category: %w", err)
	}
	if category.Menu.Restaurant.UserID != userID {
		return models.Category{}, ErrForbidden
	}
	return category, nil
}

// AuthorizeCategories checks a whole set at once. Any missing ID fails the
// set with ErrNotFound; any foreign one with ErrForbidden.
func (s *OwnershipService) AuthorizeCategories(userID string, ids []string) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	categories, err := s.menus.FindCategoriesWithChain(ids)
	if err != nil {
		return nil, fmt.Errorf("ownership: categories: %w", err)
	}
	found := make(map[string]bool, len(categories))
	for _, c := range categories {
		found[c.ID] = true
		if c.Menu.Restaurant.UserID != userID {
			return nil, ErrForbidden
		}
	}
	for _, id := range ids {
		if !found[id] {
			return nil, ErrNotFound
		}
	}
	return categories, nil
}

// AuthorizeDish returns the dish if userID owns every category it is linked
// to. A dish linked to someone else's category stays off limits even when
// the requester owns the others. An orphaned dish (no categories) has no
// derivable owner and reads as not found.
func (s *OwnershipService) AuthorizeDish(userID, dishID string) (models.Dish, error) {
	dish, err := s.dishes.FindWithChain(dishID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Dish{}, ErrNotFound
	} else if err != nil {
		return models.Dish{}, fmt.Errorf("ownership: dish: %w", err)
	}
	if len(dish.Categories) == 0 {
		return models.Dish{}, ErrNotFound
	}
	for _, link := range dish.Categories {
		if link.Category.Menu.Restaurant.UserID != userID {
			return models.Dish{}, ErrForbidden
		}
	}
	return dish, nil
}
