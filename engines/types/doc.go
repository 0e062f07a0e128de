// Package types names the available expression engines.
package types

//go:generate go run ./gen
