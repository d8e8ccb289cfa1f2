package postgres

// Package postgres contains Postgres-backed implementations of outbound ports.
//
// Notes:
// - Migrations in /migrations are the source of truth for the schema.
// - Adapters here target those migrations and must pass the same contract
//   suites as the memory adapters (run with PG_DSN set).
// - Field maps are stored as JSONB so extraction payloads stay queryable.
