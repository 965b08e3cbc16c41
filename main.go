package main

import (
	"log"
	"strings"
	"time"

	"blog/config"
	"blog/db"
	"blog/models"
	"blog/storage"
	"blog/utils"
	"blog/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionCookieName = "token"

func newStorage() storage.StorageAPI {
	if config.S3_BUCKET != "" {
		return storage.NewS3Storage(storage.Bucket{
			Name:     config.S3_BUCKET,
			Region:   config.S3_REGION,
			Prefix:   config.S3_PREFIX,
			Endpoint: config.S3_ENDPOINT,
			S3Key:    config.S3_KEY,
			S3Secret: config.S3_SECRET,
		})
	}
	return storage.NewDiskStorage(config.IMAGES_DIR)
}

func newSessionStore(instance *gorm.DB) sessions.Store {
	key := config.SESSION_KEY
	if key == "" {
		log.Printf("SESSION_KEY is not set, sessions won't survive a restart")
		key = utils.RandKey(32)
	}
	var store sessions.Store
	if config.SESSION_STORE == "cookie" {
		store = cookie.NewStore([]byte(key))
	} else {
		store = gormsessions.NewStore(instance, true, []byte(key))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.SESSION_MAX_AGE,
		HttpOnly: true,
	})
	return store
}

func newRouter(instance *gorm.DB, images storage.StorageAPI, store sessions.Store) *gin.Engine {
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	router.Use(utils.RequestIDMiddleware)
	if config.METRICS {
		router.Use(utils.MetricsMiddleware)
		router.GET("/metrics", utils.MetricsHandler())
	}
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	if origins := config.CorsOrigins(); len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin"},
			ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if config.GZIP && !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{web.ImagesURL})))
	}
	router.Use(sessions.Sessions(sessionCookieName, store))
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // Photos override this
	router.SetHTMLTemplate(web.LoadTemplates())

	handlers := &web.Handlers{DB: instance, Images: images}
	handlers.Routes(router)
	return router
}

func main() {
	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	instance, err := db.Open(config.MYSQL_DSN, config.SQLITE_FILE, config.DEBUG_MODE)
	if err != nil {
		log.Fatalf("Cannot open database: %v", err)
	}
	if err = models.Migrate(instance); err != nil {
		log.Fatalf("Cannot migrate database: %v", err)
	}
	images := newStorage()
	log.Printf("Photos are stored in %s", images.Location())

	router := newRouter(instance, images, newSessionStore(instance))
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
