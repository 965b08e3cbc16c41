package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrIncorrectUsername = errors.New("Incorrect username.")
	ErrIncorrectPassword = errors.New("Incorrect password.")
	ErrUsernameTaken     = errors.New("User is already registered.")
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt time.Time
	Username  string `gorm:"type:varchar(150);not null;index:uniq_username,unique"`
	Password  string `gorm:"type:varchar(100);not null"` // bcrypt hash
}

func (User) TableName() string {
	return "user"
}

func UserCreate(db *gorm.DB, username, plainTextPassword string) (u User, err error) {
	var count int64
	if err = db.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return
	}
	if count > 0 {
		return u, ErrUsernameTaken
	}
	u.Username = username
	if err = u.SetPassword(plainTextPassword); err != nil {
		return
	}
	return u, db.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func UserLogin(db *gorm.DB, username, plainTextPassword string) (u User, err error) {
	err = db.First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrIncorrectUsername
	} else if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, ErrIncorrectPassword
	}
	return u, nil
}

// UserGet returns the user with the given id or gorm.ErrRecordNotFound
func UserGet(db *gorm.DB, id uint64) (u User, err error) {
	err = db.First(&u, id).Error
	return
}
