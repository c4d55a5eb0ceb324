// Package faults defines the two error kinds a generation pass can produce.
// A ConfigurationError means a required input is missing or invalid; the
// affected step is skipped and reported. An IOError means the project tree
// could not be written; it aborts the rest of the pass. Nothing is retried.
package faults
