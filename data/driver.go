package data

import (
	"fmt"
	"sort"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// sqlDrivers maps configured driver names to database/sql driver names
var sqlDrivers = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

// sqlDriverName resolves a configured driver name
func sqlDriverName(driver string) (string, error) {
	name, ok := sqlDrivers[driver]
	if !ok {
		return "", fmt.Errorf("unsupported database driver %q, expected one of %v", driver, SupportedDrivers())
	}
	return name, nil
}

// SupportedDrivers returns the sorted configurable driver names
func SupportedDrivers() []string {
	names := make([]string, 0, len(sqlDrivers))
	for name := range sqlDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
