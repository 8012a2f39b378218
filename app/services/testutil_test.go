package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/repositories"
	"github.com/mymenu/mymenu/app/services"
)

// newTestDB opens an isolated in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Restaurant{},
		&models.AccessLink{},
		&models.Menu{},
		&models.Category{},
		&models.Dish{},
		&models.DishCategory{},
	))
	return db
}

// seedOwnerTree creates a user owning restaurant → menu → category → dish and
// returns the created rows.
func seedOwnerTree(t *testing.T, db *gorm.DB, email string) (models.User, models.Restaurant, models.Menu, models.Category, models.Dish) {
	t.Helper()

	user := models.User{Email: email, IsVerified: true}
	require.NoError(t, db.Create(&user).Error)

	restaurant := models.Restaurant{Name: "R " + email, UserID: user.ID}
	require.NoError(t, db.Create(&restaurant).Error)

	link := models.AccessLink{RestaurantID: restaurant.ID, ShareToken: "tok" + user.ID[:6]}
	require.NoError(t, db.Create(&link).Error)

	menu := models.Menu{Name: "Menu", RestaurantID: restaurant.ID}
	require.NoError(t, db.Create(&menu).Error)

	category := models.Category{Name: "Category", MenuID: menu.ID}
	require.NoError(t, db.Create(&category).Error)

	dish := models.Dish{Name: "Dish", Price: 10}
	require.NoError(t, db.Create(&dish).Error)
	require.NoError(t, db.Create(&models.DishCategory{DishID: dish.ID, CategoryID: category.ID}).Error)

	return user, restaurant, menu, category, dish
}

// recorderNotifier captures sent codes instead of emailing them.
type recorderNotifier struct {
	emails []string
	codes  []string
	fail   bool
}

func (n *recorderNotifier) SendVerificationCode(email, code string) error {
	if n.fail {
		return fmt.Errorf("smtp down")
	}
	n.emails = append(n.emails, email)
	n.codes = append(n.codes, code)
	return nil
}

// expireCode backdates a user's stored code past its deadline.
func expireCode(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("code_expires_at", past).Error)
}

func userRepo(db *gorm.DB) *repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

// requestCode asks svc for a fresh code and returns the upserted user.
func requestCode(t *testing.T, svc *services.VerificationService, email string) models.User {
	t.Helper()
	user, err := svc.RequestCode(email)
	require.NoError(t, err)
	return user
}
