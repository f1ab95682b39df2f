package database

import (
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // pure Go driver
)

var sqliteDialect = dialect{
	name:       "sqlite",
	driverName: "sqlite",
	// rowid follows insert order in a table that is only ever appended to.
	orderBy: "rowid",
	tableExists: `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
	placeholder: func(int) string { return "?" },
}

// sqliteDSN turns a plain file path into a DSN with the pragmas the repository
// relies on. WAL lets readers keep the old batch while a replace is committing.
// DSNs that already carry parameters are used as given.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
}
