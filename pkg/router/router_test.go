package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymenu/mymenu/pkg/router"
)

func handlerEcho(param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(router.Param(r, param))) //nolint:errcheck
	}
}

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	r.Get("/restaurants/{id}", "restaurants.show", handlerEcho("id"))

	url, err := r.URL("restaurants.show", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/restaurants/abc", url)

	_, err = r.URL("restaurants.show", nil)
	assert.Error(t, err, "missing params must not produce a broken URL")

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndParam(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/menus/{id}", "menus.show", handlerEcho("id"))

	req := httptest.NewRequest(http.MethodGet, "/api/menus/m-42", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "m-42", w.Body.String())
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/a", "a", func(w http.ResponseWriter, r *http.Request) {})
	api.Post("/b", "b", func(w http.ResponseWriter, r *http.Request) {})
	api.Delete("/b/{id}", "b.delete", func(w http.ResponseWriter, r *http.Request) {})

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "GET", infos[0].Method)
	assert.Equal(t, "/api/a", infos[0].Path)
	assert.Equal(t, "b.delete", infos[2].Name)
}

func TestMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Get("/only-get", "only-get", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/only-get", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
