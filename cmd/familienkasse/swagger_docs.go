//go:build swagger

package main

// Registers the spec produced by `go generate ./cmd/familienkasse`.
// Build with `-tags swagger` after generating.
import _ "github.com/SscSPs/familienkasse/cmd/docs"
