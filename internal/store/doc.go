// Package store holds project and proposal records.
//
// The Store interface is the only view the rest of projfold has of the
// database. Three implementations are provided:
//
//   - SQLiteStore: a local database file using the pure-Go modernc.org/sqlite
//     driver. This is the default.
//   - RedisStore: records as hashes in a shared Redis instance, namespaced by
//     a key prefix.
//   - MemoryStore: an in-process map, used by tests.
//
// Lookups of missing records return errors wrapping errors.ErrProjectNotFound
// or errors.ErrProposalNotFound.
package store
