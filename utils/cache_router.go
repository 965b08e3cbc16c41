package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1 // handlers set their own header
	CachePhotos  = 3600
)

// CacheRouter sets cache-control on everything behind it. Registered on a single route
// it overrides an engine wide CacheRouter, since route handlers run later.
type CacheRouter struct {
	CacheTime int // seconds, defaults to CacheNoCache
}

// HeaderValue is the cache-control value written, "" for CacheCustom
func (cr *CacheRouter) HeaderValue() string {
	switch {
	case cr.CacheTime == CacheCustom:
		return ""
	case cr.CacheTime <= CacheNoCache:
		return "no-cache"
	default:
		return "private, max-age=" + strconv.Itoa(cr.CacheTime)
	}
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	value := cr.HeaderValue()
	return func(c *gin.Context) {
		if value != "" {
			c.Header("cache-control", value)
		}
		c.Next()
	}
}
