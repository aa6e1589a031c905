package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL duplicate entry error number
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a unique constraint violation.
// The UNIQUE indexes are the single source of truth for deduplication;
// callers translate this into their own conflict/exists outcome.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
