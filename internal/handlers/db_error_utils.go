package handlers

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateEntryError checks if the error corresponds to a MySQL/MariaDB
// unique constraint violation, so it can be reported as a client error
// instead of a generic 500.
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// isForeignKeyConstraintError checks if the error corresponds to a
// MySQL/MariaDB foreign key constraint failure.
func isForeignKeyConstraintError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1452
}
