package web

import (
	"errors"
	"fmt"
	"net/http"

	"blog/auth"
	"blog/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type CredentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func bindCredentials(c *gin.Context) (form CredentialsForm, message string) {
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		return form, err.Error()
	}
	if form.Username == "" {
		return form, "Username is required."
	}
	if form.Password == "" {
		return form, "Password is required."
	}
	return form, ""
}

func (h *Handlers) RegisterForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.tmpl", gin.H{"username": ""})
}

func (h *Handlers) Register(c *gin.Context) {
	form, message := bindCredentials(c)
	if message == "" {
		_, err := models.UserCreate(h.conn(c), form.Username, form.Password)
		if err == nil {
			c.Redirect(http.StatusFound, auth.LoginPath)
			return
		}
		if !errors.Is(err, models.ErrUsernameTaken) {
			h.fail(c, err)
			return
		}
		message = fmt.Sprintf("User %s is already registered.", form.Username)
	}
	h.invalid(c, message, "register.tmpl", gin.H{"username": form.Username})
}

func (h *Handlers) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.tmpl", gin.H{"username": ""})
}

func (h *Handlers) Login(c *gin.Context) {
	form, message := bindCredentials(c)
	if message == "" {
		user, err := models.UserLogin(h.conn(c), form.Username, form.Password)
		if err == nil {
			if err = auth.LoadSession(c).LoginUser(&user); err != nil {
				h.fail(c, err)
				return
			}
			c.Redirect(http.StatusFound, ListPath)
			return
		}
		if !errors.Is(err, models.ErrIncorrectUsername) && !errors.Is(err, models.ErrIncorrectPassword) {
			h.fail(c, err)
			return
		}
		message = err.Error()
	}
	h.invalid(c, message, "login.tmpl", gin.H{"username": form.Username})
}

func (h *Handlers) Logout(c *gin.Context) {
	if err := auth.LoadSession(c).LogoutUser(); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, ListPath)
}
