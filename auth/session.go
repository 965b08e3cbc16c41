package auth

import (
	"blog/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	userIdKey      = "id"
	currentUserKey = "auth.user"
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Clear()
	s.Set(userIdKey, user.ID)
	return s.Save()
}

func (s *Session) LogoutUser() error {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// User returns the logged in user or nil. Sessions pointing to deleted users are treated as anonymous.
func (s *Session) User(db *gorm.DB) *models.User {
	id, ok := s.Get(userIdKey).(uint64)
	if !ok || id == 0 {
		return nil
	}
	user, err := models.UserGet(db, id)
	if err != nil {
		return nil
	}
	return &user
}

// CurrentUser resolves the user once per request and caches it on the context
func CurrentUser(c *gin.Context, db *gorm.DB) *models.User {
	if cached, ok := c.Get(currentUserKey); ok {
		return cached.(*models.User)
	}
	user := LoadSession(c).User(db.WithContext(c.Request.Context()))
	c.Set(currentUserKey, user)
	return user
}

// Flash queues a one-shot message for the next rendered page. The session is saved by Flashes(),
// or must be saved by the caller before redirecting.
func Flash(c *gin.Context, message string) {
	LoadSession(c).AddFlash(message)
}

// Flashes pops all queued messages
func Flashes(c *gin.Context) []string {
	s := LoadSession(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()
	result := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			result = append(result, msg)
		}
	}
	return result
}
