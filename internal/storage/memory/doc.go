// Package memory provides in-memory storage for ConnectUS.
//
// Persons are kept in display order. A sorted name index backs
// case-insensitive duplicate detection.
//
// Thread Safety:
//
// All operations are thread-safe. Read operations use RLock, write
// operations use Lock.
package memory
