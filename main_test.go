package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"blog/db"
	"blog/models"
	"blog/storage"
	"blog/utils"
	"blog/web"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	instance, err := db.Open("", filepath.Join(dir, "blog.sqlite"), false)
	require.NoError(t, err)
	require.NoError(t, models.Migrate(instance))

	images := storage.NewDiskStorage(filepath.Join(dir, "images"))
	router := newRouter(instance, images, cookie.NewStore([]byte("secret")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache", w.Header().Get("cache-control"))
	_, err = uuid.Parse(w.Header().Get(utils.RequestIDHeader))
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/create", nil))
	assert.Equal(t, http.StatusFound, w.Code)

	// Photos get their own cache policy on top of the engine wide no-cache
	require.NoError(t, images.EnsureDirExists())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "p.png"), []byte("png"), 0644))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, web.ImagesURL+"p.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "private, max-age=3600", w.Header().Get("cache-control"))
}

func TestNewRouter_Metrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	instance, err := db.Open("", filepath.Join(dir, "blog.sqlite"), false)
	require.NoError(t, err)
	require.NoError(t, models.Migrate(instance))
	router := newRouter(instance, storage.NewDiskStorage(dir), cookie.NewStore([]byte("secret")))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `blog_http_requests_total{method="GET",route="/",status="200"}`)
}
