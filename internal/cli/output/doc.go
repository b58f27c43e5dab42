// Package output renders connectus listings.
//
// Persons, configuration and build information can be printed as an
// aligned table (the default), JSON or YAML. Table output of a person
// listing numbers the rows with the one-based index that commands such as
// edit and delete expect.
package output
