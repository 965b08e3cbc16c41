package web

import (
	"blog/auth"
	"blog/utils"

	"github.com/gin-gonic/gin"
)

// ImagesURL is where stored photos are served from
const ImagesURL = "/static/images/"

func (h *Handlers) Routes(router *gin.Engine) {
	authRouter := &auth.Router{Base: router, DB: h.DB}

	// Auth
	router.GET("/auth/register", h.RegisterForm)
	router.POST("/auth/register", h.Register)
	router.GET(auth.LoginPath, h.LoginForm)
	router.POST(auth.LoginPath, h.Login)
	router.GET("/auth/logout", h.Logout)
	// Photos
	router.GET(ImagesURL+":name", (&utils.CacheRouter{CacheTime: utils.CachePhotos}).Handler(), h.Photo)
	// Posts
	router.GET(ListPath, h.PostList)
	authRouter.GET("/create", h.PostCreateForm)
	authRouter.POST("/create", h.PostCreate)
	authRouter.GET("/:id/update", h.PostUpdateForm)
	authRouter.POST("/:id/update", h.PostUpdate)
	authRouter.POST("/:id/delete", h.PostDelete)
}
