package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymenu/mymenu/app/models"
)

// buildTree drives the API to create restaurant → menu → category → dish and
// returns all four.
func buildTree(t *testing.T, h http.Handler, cookie *http.Cookie) (models.Restaurant, models.Menu, models.Category, models.Dish) {
	t.Helper()

	w := do(t, h, http.MethodPost, "/api/restaurants",
		map[string]string{"name": "Spice Route"}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var restaurant models.Restaurant
	decode(t, w, &restaurant)

	w = do(t, h, http.MethodPost, "/api/menus", map[string]string{
		"name": "Dinner", "restaurantId": restaurant.ID,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var menu models.Menu
	decode(t, w, &menu)

	w = do(t, h, http.MethodPost, "/api/categories", map[string]string{
		"name": "Mains", "menuId": menu.ID,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var category models.Category
	decode(t, w, &category)

	w = do(t, h, http.MethodPost, "/api/dishes", map[string]interface{}{
		"name":        "Butter Chicken",
		"description": "Slow-simmered",
		"price":       420.0,
		"spiceLevel":  1,
		"categoryIds": []string{category.ID},
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var dish models.Dish
	decode(t, w, &dish)

	return restaurant, menu, category, dish
}

func TestMenuTreeLifecycle(t *testing.T) {
	h, db := setupAPI(t)
	_, cookie := loginAs(t, db, "alice@example.com")

	restaurant, menu, category, dish := buildTree(t, h, cookie)

	// The restaurant tree shows the whole chain.
	w := do(t, h, http.MethodGet, "/api/restaurants/"+restaurant.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var tree models.Restaurant
	decode(t, w, &tree)
	require.Len(t, tree.Menus, 1)
	require.Len(t, tree.Menus[0].Categories, 1)
	require.Len(t, tree.Menus[0].Categories[0].Dishes, 1)
	assert.Equal(t, dish.ID, tree.Menus[0].Categories[0].Dishes[0].Dish.ID)

	// Menu show/update/delete.
	w = do(t, h, http.MethodGet, "/api/menus/"+menu.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPut, "/api/menus/"+menu.ID,
		map[string]string{"description": "Evenings only"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var updatedMenu models.Menu
	decode(t, w, &updatedMenu)
	assert.Equal(t, "Dinner", updatedMenu.Name)
	assert.Equal(t, "Evenings only", updatedMenu.Description)

	// Category rename and delete.
	w = do(t, h, http.MethodPut, "/api/categories/"+category.ID,
		map[string]string{"name": "Main Course"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodDelete, "/api/categories/"+category.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// The dish lost its only category, so it no longer has a resolvable
	// owner and reads as not found.
	w = do(t, h, http.MethodGet, "/api/dishes/"+dish.ID, nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodDelete, "/api/menus/"+menu.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodGet, "/api/menus/"+menu.ID, nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDishPartialUpdate(t *testing.T) {
	h, db := setupAPI(t)
	_, cookie := loginAs(t, db, "alice@example.com")
	_, _, _, dish := buildTree(t, h, cookie)

	w := do(t, h, http.MethodPut, "/api/dishes/"+dish.ID,
		map[string]interface{}{"price": 450.0}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Dish
	decode(t, w, &updated)
	assert.Equal(t, 450.0, updated.Price)
	assert.Equal(t, "Butter Chicken", updated.Name)
	assert.Equal(t, "Slow-simmered", updated.Description)
}

func TestDishCreateAgainstForeignCategory(t *testing.T) {
	h, db := setupAPI(t)
	_, aliceCookie := loginAs(t, db, "alice@example.com")
	_, bobCookie := loginAs(t, db, "bob@example.com")

	_, _, category, _ := buildTree(t, h, aliceCookie)

	w := do(t, h, http.MethodPost, "/api/dishes", map[string]interface{}{
		"name":        "Intruder",
		"price":       1.0,
		"categoryIds": []string{category.ID},
	}, bobCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMenuCreateAgainstForeignRestaurant(t *testing.T) {
	h, db := setupAPI(t)
	_, aliceCookie := loginAs(t, db, "alice@example.com")
	_, bobCookie := loginAs(t, db, "bob@example.com")

	restaurant, _, _, _ := buildTree(t, h, aliceCookie)

	w := do(t, h, http.MethodPost, "/api/menus", map[string]string{
		"name": "Takeover", "restaurantId": restaurant.ID,
	}, bobCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDishUpdateRelinksCategories(t *testing.T) {
	h, db := setupAPI(t)
	_, cookie := loginAs(t, db, "alice@example.com")
	_, menu, category, dish := buildTree(t, h, cookie)

	w := do(t, h, http.MethodPost, "/api/categories", map[string]string{
		"name": "Specials", "menuId": menu.ID,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var specials models.Category
	decode(t, w, &specials)

	w = do(t, h, http.MethodPut, "/api/dishes/"+dish.ID, map[string]interface{}{
		"categoryIds": []string{specials.ID},
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var links []models.DishCategory
	require.NoError(t, db.Where("dish_id = ?", dish.ID).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, specials.ID, links[0].CategoryID)
	assert.NotEqual(t, category.ID, links[0].CategoryID)
}
