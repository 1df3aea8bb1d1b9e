package internal

import (
	// Blank imports register the database drivers the SQL and riverqueue
	// publishers open by name.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)
