// Package history persists a record of every conversion in SQLite.
//
// Each convert invocation appends one Entry, successful or not. Count
// reports how many conversions have succeeded, which the CLI surfaces as
// the running conversion counter.
package history
