package db

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)
