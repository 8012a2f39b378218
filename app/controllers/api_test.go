package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/routes"
	"github.com/mymenu/mymenu/app/services"
	"github.com/mymenu/mymenu/pkg/router"
)

// setupAPI mounts the full API on an isolated in-memory database.
func setupAPI(t *testing.T) (http.Handler, *gorm.DB) {
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

	r := router.New()
	require.NoError(t, routes.Register(r, db))
	return r.Handler(), db
}

// loginAs creates a verified user with a live session and returns the user
// and the session cookie.
func loginAs(t *testing.T, db *gorm.DB, email string) (models.User, *http.Cookie) {
	t.Helper()

	user := models.User{Email: email, FullName: "Owner", Country: "IN", IsVerified: true}
	require.NoError(t, db.Create(&user).Error)

	session := models.Session{
		Token:     "sess" + user.ID[:22],
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&session).Error)

	return user, &http.Cookie{Name: services.CookieName, Value: session.Token}
}

// do sends a JSON request through the handler. body may be nil; cookie may
// be nil for anonymous requests.
func do(t *testing.T, h http.Handler, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorder body into dest.
func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
