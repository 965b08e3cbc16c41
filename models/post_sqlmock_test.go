package models

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var postColumns = []string{"id", "title", "comment", "photoname", "created", "author_id", "username"}

func TestPostGet_SingleJoinedQuery(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT p\.id, p\.title, .*u\.username FROM post p JOIN user u ON p\.author_id = u\.id WHERE p\.id = \?`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(7, "hello", nil, "a.png", time.Now(), 3, "alice"))

	post, err := PostGet(db, 7, AccessOwnerOnly, &User{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Title)
	assert.Equal(t, "", post.Comment)
	assert.Equal(t, "a.png", post.Photoname)
	assert.Equal(t, "alice", post.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostGet_NoRowsIsNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`FROM post p JOIN user u`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows(postColumns))

	_, err := PostGet(db, 9, AccessOwnerOnly, nil)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostDelete_SingleStatement(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec("DELETE FROM `post` WHERE `post`.`id` = \\?").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, PostDelete(db, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
