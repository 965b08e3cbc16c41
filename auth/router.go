package auth

import (
	"blog/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const LoginPath = "/auth/login"

// User is authenticated
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds auth checks + User pre-loading
type Router struct {
	Base gin.IRoutes
	DB   *gorm.DB
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	user := CurrentUser(c, cr.DB)
	if user == nil {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return
	}
	handler(c, user)
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
