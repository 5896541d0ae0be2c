// Package store executes compiled statements against SQLite.
//
// Every statement run through Store.Run is recorded in the stmtir_journal
// table in the same transaction as the statement itself. Journal entries
// are ordered by a logical sequence number, so two runs of the same
// scenario produce identical journals.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Parameters are stored as canonical JSON and query IDs are the content
// addresses computed by querysql.CompiledQuery.ID.
package store
