package controllers

import (
	"net/http"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/repositories"
	"github.com/mymenu/mymenu/app/services"
	"github.com/mymenu/mymenu/pkg/bind"
	"github.com/mymenu/mymenu/pkg/logger"
	"github.com/mymenu/mymenu/pkg/response"
	"github.com/mymenu/mymenu/pkg/router"
	"github.com/mymenu/mymenu/pkg/token"
)

// RestaurantController serves the owner-facing restaurant CRUD plus the
// public share-token endpoint.
type RestaurantController struct {
	restaurants *repositories.RestaurantRepository
	sessions    *services.SessionService
	ownership   *services.OwnershipService
	shareLinks  *services.ShareLinkService
}

func NewRestaurantController(
	restaurants *repositories.RestaurantRepository,
	sessions *services.SessionService,
	ownership *services.OwnershipService,
	shareLinks *services.ShareLinkService,
) *RestaurantController {
	return &RestaurantController{
		restaurants: restaurants,
		sessions:    sessions,
		ownership:   ownership,
		shareLinks:  shareLinks,
	}
}

// List handles GET /api/restaurants.
func (c *RestaurantController) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	restaurants, err := c.restaurants.ListByUser(user.ID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list restaurants failed", "error", err)
		response.Internal(w, "Failed to fetch restaurants")
		return
	}
	response.OK(w, restaurants)
}

// Create handles POST /api/restaurants. The restaurant and its share link
// are created together.
func (c *RestaurantController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	var body struct {
		Name     string `json:"name" validate:"required,max=255"`
		Location string `json:"location" validate:"max=255"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	restaurant := models.Restaurant{
		Name:     body.Name,
		Location: body.Location,
		UserID:   user.ID,
	}
	link := models.AccessLink{ShareToken: token.Share()}
	if err := c.restaurants.Create(&restaurant, &link); err != nil {
		logger.WithCtx(r.Context()).Error("create restaurant failed", "error", err)
		response.Internal(w, "Failed to create restaurant")
		return
	}
	response.Created(w, restaurant)
}

// Show handles GET /api/restaurants/{id}. Owner-only; the anonymous path is
// the share-token route.
func (c *RestaurantController) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	id := router.Param(r, "id")
	if _, err := c.ownership.AuthorizeRestaurant(user.ID, id); err != nil {
		writeServiceError(w, r, err, "Restaurant not found", "Failed to fetch restaurant")
		return
	}

	restaurant, err := c.restaurants.FindTree(id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("fetch restaurant failed", "error", err)
		response.Internal(w, "Failed to fetch restaurant")
		return
	}
	response.OK(w, restaurant)
}

// Update handles PUT /api/restaurants/{id}.
func (c *RestaurantController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	restaurant, err := c.ownership.AuthorizeRestaurant(user.ID, router.Param(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Restaurant not found", "Failed to update restaurant")
		return
	}

	var body struct {
		Name     *string `json:"name" validate:"omitempty,max=255"`
		Location *string `json:"location" validate:"omitempty,max=255"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if body.Name != nil {
		restaurant.Name = *body.Name
	}
	if body.Location != nil {
		restaurant.Location = *body.Location
	}

	if err := c.restaurants.Update(&restaurant); err != nil {
		logger.WithCtx(r.Context()).Error("update restaurant failed", "error", err)
		response.Internal(w, "Failed to update restaurant")
		return
	}
	c.shareLinks.Invalidate(restaurant.ID)
	response.OK(w, restaurant)
}

// Delete handles DELETE /api/restaurants/{id}.
func (c *RestaurantController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	restaurant, err := c.ownership.AuthorizeRestaurant(user.ID, router.Param(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Restaurant not found", "Failed to delete restaurant")
		return
	}

	c.shareLinks.Invalidate(restaurant.ID)
	if err := c.restaurants.Delete(restaurant.ID); err != nil {
		logger.WithCtx(r.Context()).Error("delete restaurant failed", "error", err)
		response.Internal(w, "Failed to delete restaurant")
		return
	}
	response.Message(w, "Restaurant deleted")
}

// Public handles GET /api/restaurants/public/{shareToken}. No auth; the
// token is the capability.
func (c *RestaurantController) Public(w http.ResponseWriter, r *http.Request) {
	restaurant, err := c.shareLinks.Resolve(router.Param(r, "shareToken"))
	if err != nil {
		writeServiceError(w, r, err, "Menu not found", "Failed to fetch menu")
		return
	}
	response.OK(w, restaurant)
}
