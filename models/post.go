package models

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Access decides whether reading a post requires being its author
type Access uint8

const (
	AccessPublic    Access = 0
	AccessOwnerOnly Access = 1
)

// Post is a titled entry with an optional photo, owned by its author for its whole life
type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	Title     string    `gorm:"type:text;not null"`
	Comment   string    `gorm:"type:text"`
	Photoname string    `gorm:"type:text"`
	Created   time.Time `gorm:"autoCreateTime;not null;index"`
	AuthorID  uint64    `gorm:"not null;index"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Post) TableName() string {
	return "post"
}

// PostInfo is a post joined with its author's display name
type PostInfo struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	Photoname string    `json:"photoname"`
	Created   time.Time `json:"created"`
	AuthorID  uint64    `json:"author_id"`
	Username  string    `json:"username"`
}

const postSelectClause = "p.id, p.title, p.comment, p.photoname, p.created, p.author_id, u.username"

func postQuery(db *gorm.DB) *gorm.DB {
	return db.
		Table("post p").
		Select(postSelectClause).
		Joins("JOIN user u ON p.author_id = u.id")
}

func scanPost(rows *sql.Rows) (p PostInfo, err error) {
	var comment, photoname sql.NullString
	err = rows.Scan(&p.ID, &p.Title, &comment, &photoname, &p.Created, &p.AuthorID, &p.Username)
	p.Comment = comment.String
	p.Photoname = photoname.String
	return
}

// PostList returns all posts, oldest first
func PostList(db *gorm.DB) ([]PostInfo, error) {
	rows, err := postQuery(db).Order("p.created ASC, p.id ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []PostInfo{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, rows.Err()
}

// PostGet loads a post by id. Existence is checked before ownership, so a missing
// post is always reported as not found, whoever asks. With AccessOwnerOnly a nil
// user is never the author.
func PostGet(db *gorm.DB, id uint64, access Access, user *User) (*PostInfo, error) {
	rows, err := postQuery(db).Where("p.id = ?", id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, NewNotFoundError("Post", id)
	}
	post, err := scanPost(rows)
	if err != nil {
		return nil, err
	}
	if access == AccessOwnerOnly && (user == nil || post.AuthorID != user.ID) {
		return nil, NewForbiddenError()
	}
	return &post, nil
}

// PostCreate inserts post and fills in its ID and Created time
func PostCreate(db *gorm.DB, post *Post) error {
	return db.Omit("Author").Create(post).Error
}

// PostUpdate overwrites the mutable fields. Created and AuthorID are never touched.
func PostUpdate(db *gorm.DB, id uint64, title, comment, photoname string) error {
	return db.Model(&Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":     title,
		"comment":   comment,
		"photoname": photoname,
	}).Error
}

// PostDelete removes the row. Stored photos are left alone.
func PostDelete(db *gorm.DB, id uint64) error {
	return db.Delete(&Post{}, id).Error
}
