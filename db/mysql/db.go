package mysql

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	db2 "github.com/sociallyapp/socially-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Config struct {
	User         string
	Password     string
	Host         string
	Name         string
	MaxOpenConns int
	MaxIdleConns int
}

type socialDB struct {
	*UserDB
	*ThreadDB
	*CommunityDB
	sess  db.Session
	sqlDB *sql.DB
}

// Connect opens the database, applies pending migrations, and returns the
// store. The handle is passed in explicitly everywhere; there is no package
// level connection.
func Connect(cfg *Config) (db2.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Name))
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return nil, err
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}
	return NewWithSession(sess, sqlDB), nil
}

// NewWithSession builds the store over an existing upper/db session. Tests use
// it to run the real store code against an in-memory database.
func NewWithSession(sess db.Session, sqlDB *sql.DB) db2.Database {
	return &socialDB{
		UserDB:      getUserDB(sess),
		ThreadDB:    getThreadDB(sess),
		CommunityDB: getCommunityDB(sess),
		sess:        sess,
		sqlDB:       sqlDB,
	}
}

func (sdb *socialDB) GetSQLDB() *sql.DB {
	return sdb.sqlDB
}

func (sdb *socialDB) Close() error {
	return sdb.sess.Close()
}
