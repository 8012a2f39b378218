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

// DishController serves owner-facing dish CRUD. Dishes have no owner column;
// every operation authorizes through the linked categories.
type DishController struct {
	dishes     *repositories.DishRepository
	sessions   *services.SessionService
	ownership  *services.OwnershipService
	shareLinks *services.ShareLinkService
}

func NewDishController(
	dishes *repositories.DishRepository,
	sessions *services.SessionService,
	ownership *services.OwnershipService,
	shareLinks *services.ShareLinkService,
) *DishController {
	return &DishController{
		dishes:     dishes,
		sessions:   sessions,
		ownership:  ownership,
		shareLinks: shareLinks,
	}
}

// Create handles POST /api/dishes. All target categories must exist and be
// owned by the requester.
func (c *DishController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	var body struct {
		Name        string   `json:"name" validate:"required,max=255"`
		Description string   `json:"description"`
		Price       float64  `json:"price" validate:"gte=0"`
		Image       string   `json:"image" validate:"max=512"`
		SpiceLevel  int      `json:"spiceLevel" validate:"gte=0,lte=5"`
		CategoryIDs []string `json:"categoryIds" validate:"required,min=1"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	categories, err := c.ownership.AuthorizeCategories(user.ID, body.CategoryIDs)
	if err != nil {
		writeServiceError(w, r, err, "Category not found", "Failed to create dish")
		return
	}

	dish := models.Dish{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Image:       body.Image,
		SpiceLevel:  body.SpiceLevel,
	}
	if err := c.dishes.Create(&dish, body.CategoryIDs); err != nil {
		logger.WithCtx(r.Context()).Error("create dish failed", "error", err)
		response.Internal(w, "Failed to create dish")
		return
	}
	for _, cat := range categories {
		c.shareLinks.Invalidate(cat.Menu.RestaurantID)
	}
	response.Created(w, dish)
}

// Show handles GET /api/dishes/{id}.
func (c *DishController) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	dish, err := c.ownership.AuthorizeDish(user.ID, router.Param(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Dish not found", "Failed to fetch dish")
		return
	}
	response.OK(w, dish)
}

// Update handles PUT /api/dishes/{id}. Unset fields keep their values; a
// categoryIds array, when present, re-links the dish after authorizing the
// new set too.
func (c *DishController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	dish, err := c.ownership.AuthorizeDish(user.ID, router.Param(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Dish not found", "Failed to update dish")
		return
	}

	var body struct {
		Name        *string  `json:"name" validate:"omitempty,max=255"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price" validate:"omitempty,gte=0"`
		Image       *string  `json:"image" validate:"omitempty,max=512"`
		SpiceLevel  *int     `json:"spiceLevel" validate:"omitempty,gte=0,lte=5"`
		CategoryIDs []string `json:"categoryIds"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if body.CategoryIDs != nil {
		if _, err := c.ownership.AuthorizeCategories(user.ID, body.CategoryIDs); err != nil {
			writeServiceError(w, r, err, "Category not found", "Failed to update dish")
			return
		}
	}

	if body.Name != nil {
		dish.Name = *body.Name
	}
	if body.Description != nil {
		dish.Description = *body.Description
	}
	if body.Price != nil {
		dish.Price = *body.Price
	}
	if body.Image != nil {
		dish.Image = *body.Image
	}
	if body.SpiceLevel != nil {
		dish.SpiceLevel = *body.SpiceLevel
	}

	affected := restaurantIDs(dish)
	if err := c.dishes.Update(&dish, body.CategoryIDs); err != nil {
		logger.WithCtx(r.Context()).Error("update dish failed", "error", err)
		response.Internal(w, "Failed to update dish")
		return
	}
	for _, id := range affected {
		c.shareLinks.Invalidate(id)
	}
	response.OK(w, dish)
}

// Delete handles DELETE /api/dishes/{id}.
func (c *DishController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	dish, err := c.ownership.AuthorizeDish(user.ID, router.Param(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Dish not found", "Failed to delete dish")
		return
	}

	affected := restaurantIDs(dish)
	if err := c.dishes.Delete(dish.ID); err != nil {
		logger.WithCtx(r.Context()).Error("delete dish failed", "error", err)
		response.Internal(w, "Failed to delete dish")
		return
	}
	for _, id := range affected {
		c.shareLinks.Invalidate(id)
	}
	response.Message(w, "Dish deleted")
}

// restaurantIDs collects the distinct restaurants a dish (with chain
// preloaded) belongs to.
func restaurantIDs(dish models.Dish) []string {
	seen := map[string]bool{}
	var ids []string
	for _, link := range dish.Categories {
		rid := link.Category.Menu.RestaurantID
		if rid != "" && !seen[rid] {
			seen[rid] = true
			ids = append(ids, rid)
		}
	}
	return ids
}
