package database

import (
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

var postgresDialect = dialect{
	name:       "postgres",
	driverName: "pgx",
	// Replace only ever fills a freshly created table, so physical order is insert order.
	orderBy:     "ctid",
	tableExists: `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`,
	placeholder: func(i int) string { return "$" + strconv.Itoa(i) },
}
