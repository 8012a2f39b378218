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
)

// MenuController serves owner-facing menu CRUD.
type MenuController struct {
	menus      *repositories.MenuRepository
	sessions   *services.SessionService
	ownership  *services.OwnershipService
	shareLinks *services.ShareLinkService
}

func NewMenuController(
	menus *repositories.MenuRepository,
	sessions *services.SessionService,
	ownership *services.OwnershipService,
	shareLinks *services.ShareLinkService,
) *MenuController {
	return &MenuController{
		menus:      menus,
		sessions:   sessions,
		ownership:  ownership,
		shareLinks: shareLinks,
	}
}

// Create handles POST /api/menus. The target restaurant must belong to the
// requester.
func (c *MenuController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	var body struct {
		Name         string `json:"name" validate:"required,max=255"`
		Description  string `json:"description"`
		RestaurantID string `json:"restaurantId" validate:"required"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if _, err := c.ownership.AuthorizeRestaurant(user.ID, body.RestaurantID); err != nil {
		writeServiceError(w, r, err, "Restaurant not found", "Failed to create menu")
		return
	}

	menu := models.Menu{
		Name:         body.Name,
		Description:  body.Description,
		RestaurantID: body.RestaurantID,
	}
	if err := c.menus.Create(&menu); err != nil {
		logger.WithCtx(r.Context()).Error("create menu failed", "error", err)
		response.Internal(w, "Failed to create menu")
		return
	}
	c.shareLinks.Invalidate(menu.RestaurantID)
	response.Created(w, menu)
}

// Show handles GET /api/menus/{id}, returning the menu with its categories
// and dishes.
func (c *MenuController) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	id := router.Param(r, "id")
	if _, err := c.ownership.AuthorizeMenu(user.ID, id); err != nil {
		writeServiceError(w, r, err, "Menu not found", "Failed to fetch menu")
		return
	}

	menu, err := c.menus.FindTree(id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("fetch menu failed", "error", err)
		response.Internal(w, "Failed to fetch menu")
		return
	}
	response.OK(w, menu)
}

// Update handles PUT /api/menus/{id}.
func (c *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	menu, err := c.ownership.AuthorizeMenu(user.ID, router.Param(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Menu not found", "Failed to update menu")
		return
	}

	var body struct {
		Name        *string `json:"name" validate:"omitempty,max=255"`
		Description *string `json:"description"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if body.Name != nil {
		menu.Name = *body.Name
	}
	if body.Description != nil {
		menu.Description = *body.Description
	}

	if err := c.menus.Update(&menu); err != nil {
		logger.WithCtx(r.Context()).Error("update menu failed", "error", err)
		response.Internal(w, "Failed to update menu")
		return
	}
	c.shareLinks.Invalidate(menu.RestaurantID)
	response.OK(w, menu)
}

// Delete handles DELETE /api/menus/{id}.
func (c *MenuController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	menu, err := c.ownership.AuthorizeMenu(user.ID, router.Param(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Menu not found", "Failed to delete menu")
		return
	}

	if err := c.menus.Delete(menu.ID); err != nil {
		logger.WithCtx(r.Context()).Error("delete menu failed", "error", err)
		response.Internal(w, "Failed to delete menu")
		return
	}
	c.shareLinks.Invalidate(menu.RestaurantID)
	response.Message(w, "Menu deleted")
}
