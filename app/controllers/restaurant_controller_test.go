package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymenu/mymenu/app/models"
)

func TestRestaurantCRUD(t *testing.T) {
	h, db := setupAPI(t)
	_, cookie := loginAs(t, db, "alice@example.com")

	// Create returns the restaurant with its share link.
	w := do(t, h, http.MethodPost, "/api/restaurants",
		map[string]string{"name": "Spice Route", "location": "Bengaluru"}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Restaurant
	decode(t, w, &created)
	assert.Equal(t, "Spice Route", created.Name)
	require.Len(t, created.AccessLinks, 1)
	assert.Len(t, created.AccessLinks[0].ShareToken, 9)

	// List contains it.
	w = do(t, h, http.MethodGet, "/api/restaurants", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Restaurant
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// Show returns the tree.
	w = do(t, h, http.MethodGet, "/api/restaurants/"+created.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Update.
	w = do(t, h, http.MethodPut, "/api/restaurants/"+created.ID,
		map[string]string{"name": "Spice Route 2"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Restaurant
	decode(t, w, &updated)
	assert.Equal(t, "Spice Route 2", updated.Name)
	assert.Equal(t, "Bengaluru", updated.Location)

	// Delete.
	w = do(t, h, http.MethodDelete, "/api/restaurants/"+created.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/api/restaurants/"+created.ID, nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestaurantCrossUserIsForbidden(t *testing.T) {
	h, db := setupAPI(t)
	_, aliceCookie := loginAs(t, db, "alice@example.com")
	_, bobCookie := loginAs(t, db, "bob@example.com")

	w := do(t, h, http.MethodPost, "/api/restaurants",
		map[string]string{"name": "Alice's"}, aliceCookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var restaurant models.Restaurant
	decode(t, w, &restaurant)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		var body interface{}
		if method == http.MethodPut {
			body = map[string]string{"name": "Bob's now"}
		}
		w = do(t, h, method, "/api/restaurants/"+restaurant.ID, body, bobCookie)
		assert.Equal(t, http.StatusForbidden, w.Code, method)
	}

	// Bob's list does not leak Alice's restaurant.
	w = do(t, h, http.MethodGet, "/api/restaurants", nil, bobCookie)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Restaurant
	decode(t, w, &list)
	assert.Empty(t, list)
}

func TestRestaurantRequiresAuth(t *testing.T) {
	h, _ := setupAPI(t)

	w := do(t, h, http.MethodGet, "/api/restaurants", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, h, http.MethodPost, "/api/restaurants",
		map[string]string{"name": "Nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRestaurantValidation(t *testing.T) {
	h, db := setupAPI(t)
	_, cookie := loginAs(t, db, "alice@example.com")

	w := do(t, h, http.MethodPost, "/api/restaurants",
		map[string]string{"location": "Nowhere"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicShareTokenResolution(t *testing.T) {
	h, db := setupAPI(t)
	_, cookie := loginAs(t, db, "alice@example.com")

	w := do(t, h, http.MethodPost, "/api/restaurants",
		map[string]string{"name": "Spice Route"}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var restaurant models.Restaurant
	decode(t, w, &restaurant)
	token := restaurant.AccessLinks[0].ShareToken

	// Anonymous resolution works.
	w = do(t, h, http.MethodGet, "/api/restaurants/public/"+token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var public models.Restaurant
	decode(t, w, &public)
	assert.Equal(t, restaurant.ID, public.ID)

	// Bogus token is a 404, same for structurally plausible ones.
	w = do(t, h, http.MethodGet, "/api/restaurants/public/zzzzzzzzz", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
