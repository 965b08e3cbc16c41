package web

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"blog/models"
	"blog/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	t         *testing.T
	db        *gorm.DB
	router    *gin.Engine
	imagesDir string
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWithImages(t, "")
}

// newTestAppWithImages uses imagesDir for photos, or a fresh directory if it's empty
func newTestAppWithImages(t *testing.T, imagesDir string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	database, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.sqlite")), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(database))
	t.Cleanup(func() {
		sqlDB, _ := database.DB()
		sqlDB.Close()
	})
	if imagesDir == "" {
		imagesDir = filepath.Join(dir, "images")
	}

	router := gin.New()
	router.Use(sessions.Sessions("token", cookie.NewStore([]byte("test-secret"))))
	router.SetHTMLTemplate(LoadTemplates())
	h := &Handlers{DB: database, Images: storage.NewDiskStorage(imagesDir)}
	h.Routes(router)

	return &testApp{t: t, db: database, router: router, imagesDir: imagesDir}
}

func (a *testApp) do(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookies)
}

func urlEncoded(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// multipartForm builds a browser-like post form. The photo part is left out when filename is "".
func multipartForm(t *testing.T, path string, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// login registers username and returns the session cookie
func (a *testApp) login(username string) (models.User, []*http.Cookie) {
	a.t.Helper()
	user, err := models.UserCreate(a.db, username, "secret")
	require.NoError(a.t, err)

	w := a.do(urlEncoded("/auth/login", url.Values{"username": {username}, "password": {"secret"}}), nil)
	require.Equal(a.t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(a.t, cookies)
	return user, cookies[len(cookies)-1:]
}

func (a *testApp) createPost(author models.User, title, photo string) models.Post {
	a.t.Helper()
	post := models.Post{Title: title, Comment: "comment of " + title, Photoname: photo, AuthorID: author.ID}
	require.NoError(a.t, models.PostCreate(a.db, &post))
	return post
}

func (a *testApp) posts() []models.PostInfo {
	a.t.Helper()
	posts, err := models.PostList(a.db)
	require.NoError(a.t, err)
	return posts
}
