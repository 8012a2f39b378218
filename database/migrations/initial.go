package migrations

import (
	"gorm.io/gorm"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_sessions_table", &CreateSessionsTable{})
	migration.Register("20260301000002_create_restaurants_table", &CreateRestaurantsTable{})
	migration.Register("20260301000003_create_access_links_table", &CreateAccessLinksTable{})
	migration.Register("20260301000004_create_menu_tables", &CreateMenuTables{})
}

// -------- 0000: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0001: sessions --------

type CreateSessionsTable struct{}

func (m *CreateSessionsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Session{})
}

func (m *CreateSessionsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("sessions")
}

// -------- 0002: restaurants --------

type CreateRestaurantsTable struct{}

func (m *CreateRestaurantsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Restaurant{})
}

func (m *CreateRestaurantsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("restaurants")
}

// -------- 0003: access links --------

type CreateAccessLinksTable struct{}

func (m *CreateAccessLinksTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.AccessLink{})
}

func (m *CreateAccessLinksTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("access_links")
}

// -------- 0004: menus, categories, dishes --------

type CreateMenuTables struct{}

func (m *CreateMenuTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Menu{},
		&models.Category{},
		&models.Dish{},
		&models.DishCategory{},
	)
}

func (m *CreateMenuTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("dish_categories", "dishes", "categories", "menus")
}
