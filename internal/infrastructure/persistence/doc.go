// Package persistence provides the GORM repository implementations of the domain
// contracts, the database connection and the per-service schema migration.
package persistence
