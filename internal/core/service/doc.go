// Package service provides domain services for ConnectUS.
//
// AddressBook is the Model commands run against. It owns the in-memory
// working copy and the display filter, and writes the whole book through
// a Repository after every mutation. Storage dependencies are declared
// as interfaces here and implemented by the storage packages.
package service
