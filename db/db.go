package db

import (
	"log"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a connection pool. MySQL is used when mysqlDSN is set, SQLite (sqliteFile) otherwise.
// There is no process-wide instance - callers pass the pool around and derive request scoped
// sessions from it with WithContext().
func Open(mysqlDSN, sqliteFile string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if mysqlDSN != "" {
		cfg, err := mysqldriver.ParseDSN(mysqlDSN)
		if err != nil {
			return nil, err
		}
		if !cfg.ParseTime {
			log.Printf("MYSQL_DSN has no parseTime=True, forcing it")
			cfg.ParseTime = true
		}
		log.Printf("Using MySQL database %q at %s", cfg.DBName, cfg.Addr)
		dialector = mysql.Open(cfg.FormatDSN())
	} else {
		log.Printf("Using SQLite database %s", sqliteFile)
		dialector = sqlite.Open(sqliteFile)
	}
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		// Writes are committed explicitly by the handlers
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logLevel),
	})
}
