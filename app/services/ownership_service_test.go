package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/repositories"
	"github.com/mymenu/mymenu/app/services"
)

func newOwnershipService(db *gorm.DB) *services.OwnershipService {
	return services.NewOwnershipService(
		repositories.NewRestaurantRepository(db),
		repositories.NewMenuRepository(db),
		repositories.NewDishRepository(db),
	)
}

func TestAuthorizeOwnChain(t *testing.T) {
	db := newTestDB(t)
	alice, restaurant, menu, category, dish := seedOwnerTree(t, db, "alice@example.com")
	svc := newOwnershipService(db)

	got, err := svc.AuthorizeRestaurant(alice.ID, restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, got.ID)

	gotMenu, err := svc.AuthorizeMenu(alice.ID, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, menu.ID, gotMenu.ID)

	gotCategory, err := svc.AuthorizeCategory(alice.ID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, gotCategory.ID)

	gotDish, err := svc.AuthorizeDish(alice.ID, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, dish.ID, gotDish.ID)
}

func TestAuthorizeForeignChainForbidden(t *testing.T) {
	db := newTestDB(t)
	_, restaurant, menu, category, dish := seedOwnerTree(t, db, "alice@example.com")
	bob, _, _, _, _ := seedOwnerTree(t, db, "bob@example.com")
	svc := newOwnershipService(db)

	_, err := svc.AuthorizeRestaurant(bob.ID, restaurant.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.AuthorizeMenu(bob.ID, menu.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.AuthorizeCategory(bob.ID, category.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.AuthorizeDish(bob.ID, dish.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestAuthorizeMissingEntitiesNotFound(t *testing.T) {
	db := newTestDB(t)
	alice, _, _, _, _ := seedOwnerTree(t, db, "alice@example.com")
	svc := newOwnershipService(db)

	_, err := svc.AuthorizeRestaurant(alice.ID, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.AuthorizeMenu(alice.ID, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.AuthorizeCategory(alice.ID, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.AuthorizeDish(alice.ID, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAuthorizeDishSpanningTwoOwners(t *testing.T) {
	db := newTestDB(t)
	alice, _, _, aliceCat, _ := seedOwnerTree(t, db, "alice@example.com")
	bob, _, _, bobCat, _ := seedOwnerTree(t, db, "bob@example.com")
	svc := newOwnershipService(db)

	shared := models.Dish{Name: "Shared", Price: 5}
	require.NoError(t, db.Create(&shared).Error)
	require.NoError(t, db.Create(&models.DishCategory{DishID: shared.ID, CategoryID: aliceCat.ID}).Error)
	require.NoError(t, db.Create(&models.DishCategory{DishID: shared.ID, CategoryID: bobCat.ID}).Error)

	// Neither owner controls the whole chain, so neither may touch it.
	_, err := svc.AuthorizeDish(alice.ID, shared.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.AuthorizeDish(bob.ID, shared.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestAuthorizeOrphanDishNotFound(t *testing.T) {
	db := newTestDB(t)
	alice, _, _, _, _ := seedOwnerTree(t, db, "alice@example.com")
	svc := newOwnershipService(db)

	orphan := models.Dish{Name: "Orphan", Price: 1}
	require.NoError(t, db.Create(&orphan).Error)

	_, err := svc.AuthorizeDish(alice.ID, orphan.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAuthorizeCategoriesSet(t *testing.T) {
	db := newTestDB(t)
	alice, _, _, aliceCat, _ := seedOwnerTree(t, db, "alice@example.com")
	_, _, _, bobCat, _ := seedOwnerTree(t, db, "bob@example.com")
	svc := newOwnershipService(db)

	got, err := svc.AuthorizeCategories(alice.ID, []string{aliceCat.ID})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.AuthorizeCategories(alice.ID, []string{aliceCat.ID, bobCat.ID})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.AuthorizeCategories(alice.ID, []string{aliceCat.ID, "missing"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.AuthorizeCategories(alice.ID, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
