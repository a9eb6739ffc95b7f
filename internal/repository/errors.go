// Package repository implements MySQL persistence for users, customers,
// genres and movies.  Each repository maps "no such row" to a sentinel
// error so handlers can distinguish a missing record (404) from a storage
// fault (500) with errors.Is.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrMovieNotFound    = errors.New("movie not found")

	// ErrEmailExists is returned when a user with the same email is already
	// registered.
	ErrEmailExists = errors.New("email already exists")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
