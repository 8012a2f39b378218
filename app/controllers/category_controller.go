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

// CategoryController serves owner-facing category CRUD.
type CategoryController struct {
	menus      *repositories.MenuRepository
	sessions   *services.SessionService
	ownership  *services.OwnershipService
	shareLinks *services.ShareLinkService
}

func NewCategoryController(
	menus *repositories.MenuRepository,
	sessions *services.SessionService,
	ownership *services.OwnershipService,
	shareLinks *services.ShareLinkService,
) *CategoryController {
	return &CategoryController{
		menus:      menus,
		sessions:   sessions,
		ownership:  ownership,
		shareLinks: shareLinks,
	}
}

// Create handles POST /api/categories. The target menu must belong to the
// requester.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	var body struct {
		Name   string `json:"name" validate:"required,max=255"`
		MenuID string `json:"menuId" validate:"required"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	menu, err := c.ownership.AuthorizeMenu(user.ID, body.MenuID)
	if err != nil {
		writeServiceError(w, r, err, "Menu not found", "Failed to create category")
		return
	}

	category := models.Category{Name: body.Name, MenuID: menu.ID}
	if err := c.menus.CreateCategory(&category); err != nil {
		logger.WithCtx(r.Context()).Error("create category failed", "error", err)
		response.Internal(w, "Failed to create category")
		return
	}
	c.shareLinks.Invalidate(menu.RestaurantID)
	response.Created(w, category)
}

// Update handles PUT /api/categories/{id}.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	category, err := c.ownership.AuthorizeCategory(user.ID, router.Param(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Category not found", "Failed to update category")
		return
	}

	var body struct {
		Name string `json:"name" validate:"required,max=255"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	category.Name = body.Name

	if err := c.menus.UpdateCategory(&category); err != nil {
		logger.WithCtx(r.Context()).Error("update category failed", "error", err)
		response.Internal(w, "Failed to update category")
		return
	}
	c.shareLinks.Invalidate(category.Menu.RestaurantID)
	response.OK(w, category)
}

// Delete handles DELETE /api/categories/{id}.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	category, err := c.ownership.AuthorizeCategory(user.ID, router.Param(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Category not found", "Failed to delete category")
		return
	}

	if err := c.menus.DeleteCategory(category.ID); err != nil {
		logger.WithCtx(r.Context()).Error("delete category failed", "error", err)
		response.Internal(w, "Failed to delete category")
		return
	}
	c.shareLinks.Invalidate(category.Menu.RestaurantID)
	response.Message(w, "Category deleted")
}
