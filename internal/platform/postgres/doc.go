// Package postgres provides PostgreSQL implementations of the store
// interfaces, built on database/sql with the pgx driver. Constructors
// accept a store.DBTX so the same implementation serves the shared
// pool, a transaction, or a job scope's dedicated connection.
package postgres
