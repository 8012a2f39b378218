package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymenu/mymenu/app/models"
)

func TestGraphQLPublicMenuQuery(t *testing.T) {
	h, db := setupAPI(t)
	_, cookie := loginAs(t, db, "alice@example.com")
	restaurant, _, _, _ := buildTree(t, h, cookie)

	var link models.AccessLink
	require.NoError(t, db.Where("restaurant_id = ?", restaurant.ID).First(&link).Error)

	query := `query($token: String!) {
		restaurant(shareToken: $token) {
			name
			menus { name categories { name dishes { name price } } }
		}
	}`

	w := do(t, h, http.MethodPost, "/api/graphql", map[string]interface{}{
		"query":     query,
		"variables": map[string]interface{}{"token": link.ShareToken},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Restaurant struct {
				Name  string `json:"name"`
				Menus []struct {
					Name       string `json:"name"`
					Categories []struct {
						Name   string `json:"name"`
						Dishes []struct {
							Name  string  `json:"name"`
							Price float64 `json:"price"`
						} `json:"dishes"`
					} `json:"categories"`
				} `json:"menus"`
			} `json:"restaurant"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	decode(t, w, &body)
	assert.Empty(t, body.Errors)
	assert.Equal(t, "Spice Route", body.Data.Restaurant.Name)
	require.Len(t, body.Data.Restaurant.Menus, 1)
	require.Len(t, body.Data.Restaurant.Menus[0].Categories, 1)
	require.Len(t, body.Data.Restaurant.Menus[0].Categories[0].Dishes, 1)
	assert.Equal(t, 420.0, body.Data.Restaurant.Menus[0].Categories[0].Dishes[0].Price)
}

func TestGraphQLUnknownToken(t *testing.T) {
	h, _ := setupAPI(t)

	w := do(t, h, http.MethodPost, "/api/graphql", map[string]interface{}{
		"query": `{ restaurant(shareToken: "nope") { name } }`,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Restaurant interface{} `json:"restaurant"`
		} `json:"data"`
	}
	decode(t, w, &body)
	assert.Nil(t, body.Data.Restaurant)
}

func TestGraphQLMissingQuery(t *testing.T) {
	h, _ := setupAPI(t)

	w := do(t, h, http.MethodPost, "/api/graphql", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
