// Package storage persists the ConnectUS address book.
//
// A Repository loads and saves the whole person list. Two
// implementations exist:
//
//   - BadgerRepository: persons stored as JSON values in an embedded
//     Badger database, one key per position
//   - EphemeralRepository: keeps nothing, for throwaway sessions and tests
//
// The in-memory working copy lives in package memory.
package storage
