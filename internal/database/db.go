package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATE/DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// DuplicateKey reports whether err is a MySQL duplicate-entry error
// (1062) and, if so, which unique index was violated. Booking and
// withdrawal invariants live in unique indexes, so conflicting inserts
// surface here rather than through prior reads.
func DuplicateKey(err error) (index string, ok bool) {
	var my *mysql.MySQLError
	if !errors.As(err, &my) || my.Number != 1062 {
		return "", false
	}
	// Message shape: Duplicate entry 'x' for key 'table.index_name'
	msg := my.Message
	last := -1
	for i := len(msg) - 1; i >= 0; i-- {
		if msg[i] == '\'' {
			last = i
			break
		}
	}
	if last <= 0 {
		return "", true
	}
	start := -1
	for i := last - 1; i >= 0; i-- {
		if msg[i] == '\'' {
			start = i
			break
		}
	}
	if start < 0 {
		return "", true
	}
	key := msg[start+1 : last]
	// Strip the table qualifier MySQL 8 prepends.
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '.' {
			return key[i+1:], true
		}
	}
	return key, true
}
