// Package routes wires controllers onto the router. All application routes
// live under /api; /metrics is mounted by the server.
package routes

import (
	"github.com/mymenu/mymenu/app/controllers"
	"github.com/mymenu/mymenu/app/repositories"
	"github.com/mymenu/mymenu/app/services"
	"github.com/mymenu/mymenu/pkg/router"

	"gorm.io/gorm"
)

// Register builds the repository/service/controller graph on db and mounts
// every API route on r.
func Register(r *router.Router, db *gorm.DB) error {
	users := repositories.NewUserRepository(db)
	sessions := repositories.NewSessionRepository(db)
	restaurants := repositories.NewRestaurantRepository(db)
	menus := repositories.NewMenuRepository(db)
	dishes := repositories.NewDishRepository(db)

	verificationSvc := services.NewVerificationService(users, services.SMTPNotifier{})
	sessionSvc := services.NewSessionService(sessions)
	ownershipSvc := services.NewOwnershipService(restaurants, menus, dishes)
	shareLinkSvc := services.NewShareLinkService(restaurants)

	auth := controllers.NewAuthController(verificationSvc, sessionSvc)
	restaurant := controllers.NewRestaurantController(restaurants, sessionSvc, ownershipSvc, shareLinkSvc)
	menu := controllers.NewMenuController(menus, sessionSvc, ownershipSvc, shareLinkSvc)
	category := controllers.NewCategoryController(menus, sessionSvc, ownershipSvc, shareLinkSvc)
	dish := controllers.NewDishController(dishes, sessionSvc, ownershipSvc, shareLinkSvc)
	upload := controllers.NewUploadController(sessionSvc)
	gql, err := controllers.NewGraphQLController(shareLinkSvc)
	if err != nil {
		return err
	}

	api := r.Group("/api")

	api.Post("/auth/send-code", "auth.send-code", auth.SendCode)
	api.Post("/auth/verify", "auth.verify", auth.Verify)
	api.Get("/auth/me", "auth.me", auth.Me)
	api.Post("/auth/logout", "auth.logout", auth.Logout)

	api.Get("/restaurants", "restaurants.list", restaurant.List)
	api.Post("/restaurants", "restaurants.create", restaurant.Create)
	// Mounted before {id} so "public" is never read as a restaurant ID.
	api.Get("/restaurants/public/{shareToken}", "restaurants.public", restaurant.Public)
	api.Get("/restaurants/{id}", "restaurants.show", restaurant.Show)
	api.Put("/restaurants/{id}", "restaurants.update", restaurant.Update)
	api.Delete("/restaurants/{id}", "restaurants.delete", restaurant.Delete)

	api.Post("/menus", "menus.create", menu.Create)
	api.Get("/menus/{id}", "menus.show", menu.Show)
	api.Put("/menus/{id}", "menus.update", menu.Update)
	api.Delete("/menus/{id}", "menus.delete", menu.Delete)

	api.Post("/categories", "categories.create", category.Create)
	api.Put("/categories/{id}", "categories.update", category.Update)
	api.Delete("/categories/{id}", "categories.delete", category.Delete)

	api.Post("/dishes", "dishes.create", dish.Create)
	api.Get("/dishes/{id}", "dishes.show", dish.Show)
	api.Put("/dishes/{id}", "dishes.update", dish.Update)
	api.Delete("/dishes/{id}", "dishes.delete", dish.Delete)

	api.Post("/uploads", "uploads.store", upload.Store)

	api.Post("/graphql", "graphql", gql.Query)

	return nil
}
