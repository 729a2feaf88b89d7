// Package ports defines the interfaces between the home screen core and its adapters.
// Test doubles live in internal/mocks.
package ports
