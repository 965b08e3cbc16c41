package web

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"blog/models"
	"blog/storage"
	"blog/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	ListPath        = "/"
	photoFormField  = "photo"
	titleIsRequired = "Title is required."
)

type PostForm struct {
	Title   string `form:"title"`
	Comment string `form:"comment"`
}

func postID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, models.NewNotFoundError("Post", c.Param("id"))
	}
	return id, nil
}

// bindPostForm reads the form and the optional photo. message is set when the form is invalid,
// err when the photo part can't be read.
func bindPostForm(c *gin.Context) (form PostForm, upload *multipart.FileHeader, message string, err error) {
	if bindErr := c.ShouldBindWith(&form, binding.Form); bindErr != nil {
		return form, nil, bindErr.Error(), nil
	}
	if form.Title == "" {
		return form, nil, titleIsRequired, nil
	}
	upload, err = formUpload(c)
	return form, upload, "", err
}

// formUpload returns the photo part, or nil when the request carries none
func formUpload(c *gin.Context) (*multipart.FileHeader, error) {
	upload, err := c.FormFile(photoFormField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return upload, err
}

func photoname(upload *multipart.FileHeader) string {
	if upload == nil {
		return ""
	}
	return storage.CleanName(upload.Filename)
}

// storeUpload runs after the row is committed. A failure here leaves the row pointing at a missing file.
func (h *Handlers) storeUpload(c *gin.Context, postID uint64, upload *multipart.FileHeader) bool {
	if _, err := storage.Store(h.Images, upload); err != nil {
		log.Printf("%s: post %d committed, but its photo was not stored: %v", utils.RequestID(c), postID, err)
		utils.PhotoStoreFailures.Inc()
		h.fail(c, models.NewInternalError(err))
		return false
	}
	return true
}

func (h *Handlers) PostList(c *gin.Context) {
	posts, err := models.PostList(h.conn(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, posts)
		return
	}
	h.render(c, http.StatusOK, "index.tmpl", gin.H{"posts": posts})
}

func (h *Handlers) PostCreateForm(c *gin.Context, user *models.User) {
	h.render(c, http.StatusOK, "create.tmpl", gin.H{"form": PostForm{}})
}

func (h *Handlers) PostCreate(c *gin.Context, user *models.User) {
	form, upload, message, err := bindPostForm(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if message != "" {
		h.invalid(c, message, "create.tmpl", gin.H{"form": form})
		return
	}
	post := models.Post{
		Title:     form.Title,
		Comment:   form.Comment,
		Photoname: photoname(upload),
		AuthorID:  user.ID,
	}
	tx := h.conn(c).Begin()
	if err := models.PostCreate(tx, &post); err != nil {
		tx.Rollback()
		h.fail(c, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		h.fail(c, err)
		return
	}
	utils.PostWrites.WithLabelValues("create").Inc()
	if !h.storeUpload(c, post.ID, upload) {
		return
	}
	c.Redirect(http.StatusFound, ListPath)
}

func (h *Handlers) PostUpdateForm(c *gin.Context, user *models.User) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	post, err := models.PostGet(h.conn(c), id, models.AccessOwnerOnly, user)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "update.tmpl", gin.H{"post": post})
}

func (h *Handlers) PostUpdate(c *gin.Context, user *models.User) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	conn := h.conn(c)
	post, err := models.PostGet(conn, id, models.AccessOwnerOnly, user)
	if err != nil {
		h.fail(c, err)
		return
	}
	form, upload, message, err := bindPostForm(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if message != "" {
		h.invalid(c, message, "update.tmpl", gin.H{"post": post})
		return
	}
	tx := conn.Begin()
	if err = models.PostUpdate(tx, id, form.Title, form.Comment, photoname(upload)); err != nil {
		tx.Rollback()
		h.fail(c, err)
		return
	}
	if err = tx.Commit().Error; err != nil {
		h.fail(c, err)
		return
	}
	utils.PostWrites.WithLabelValues("update").Inc()
	if !h.storeUpload(c, id, upload) {
		return
	}
	c.Redirect(http.StatusFound, ListPath)
}

// PostDelete removes the row only, the photo stays in storage
func (h *Handlers) PostDelete(c *gin.Context, user *models.User) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	conn := h.conn(c)
	if _, err = models.PostGet(conn, id, models.AccessOwnerOnly, user); err != nil {
		h.fail(c, err)
		return
	}
	tx := conn.Begin()
	if err = models.PostDelete(tx, id); err != nil {
		tx.Rollback()
		h.fail(c, err)
		return
	}
	if err = tx.Commit().Error; err != nil {
		h.fail(c, err)
		return
	}
	utils.PostWrites.WithLabelValues("delete").Inc()
	c.Redirect(http.StatusFound, ListPath)
}

func (h *Handlers) Photo(c *gin.Context) {
	h.Images.Serve(c.Param("name"), c.Request, c.Writer)
}
