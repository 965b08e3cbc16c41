package web

import (
	"errors"
	"log"
	"net/http"

	"blog/auth"
	"blog/models"
	"blog/storage"
	"blog/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers serves the blog pages. DB is the connection pool, every request works on its
// own session derived from it (see conn).
type Handlers struct {
	DB     *gorm.DB
	Images storage.StorageAPI
}

func (h *Handlers) conn(c *gin.Context) *gorm.DB {
	return h.DB.WithContext(c.Request.Context())
}

func wantsJSON(c *gin.Context) bool {
	return c.Query("format") == "json"
}

// render adds the current user and pending flash messages to data
func (h *Handlers) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = auth.CurrentUser(c, h.DB)
	data["flashes"] = auth.Flashes(c)
	c.HTML(status, name, data)
}

// invalid re-renders a form with message flashed, JSON clients get a VALIDATION_ERROR body instead
func (h *Handlers) invalid(c *gin.Context, message, name string, data gin.H) {
	if wantsJSON(c) {
		h.fail(c, models.NewValidationError(message))
		return
	}
	auth.Flash(c, message)
	h.render(c, http.StatusOK, name, data)
}

// fail reports err with the status of its *models.AppError, anything else is a 500
func (h *Handlers) fail(c *gin.Context, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}
	_ = c.Error(err)
	if appErr.Status >= http.StatusInternalServerError {
		log.Printf("%s: %s %s: %v", utils.RequestID(c), c.Request.Method, c.Request.URL.Path, err)
	}
	if wantsJSON(c) {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
	} else {
		h.render(c, appErr.Status, "error.tmpl", gin.H{
			"status":  appErr.Status,
			"title":   http.StatusText(appErr.Status),
			"message": appErr.Message,
		})
	}
	c.Abort()
}
