// Package catalog persists clip timing records in a SQLite database. Each
// pipeline run writes its full ordered record list in one transaction, so
// the catalog only ever reflects clips that were actually materialized.
package catalog
