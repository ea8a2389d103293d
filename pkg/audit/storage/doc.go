// Package storage provides audit-bundle storage backends: a SQLite
// backend for durable compliance storage and an in-memory backend for
// tests.
package storage
