// Package store persists a history of synthesis runs in SQLite.
//
// Each completed or failed synthesis becomes one history row carrying the
// request parameters, the result provenance, and a request fingerprint so
// identical requests can be recognized across runs. The database lives
// under the configured data directory; schema creation is serialized with
// a file lock so concurrent first runs do not race.
package store
