// Package store holds the in-memory task and time block collections.
//
// Both stores hand out copies, so callers never mutate stored state
// directly. Each store guards its collection with a mutex; BlockStore.Create
// checks the one-block-per-task-per-day and overlap invariants and inserts
// under the same lock.
package store
