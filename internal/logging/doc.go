// Package logging provides slog construction and shared attribute helpers.
//
// Two output formats are supported: a human-oriented console format
// ("ts LEVEL component: msg k=v") and plain JSON. Components obtain a child
// logger via NewComponentLogger so every line carries its origin.
package logging
