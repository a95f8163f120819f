// Package segstore persists detection runs and their canonical segments in
// a SQLite database, and exports segments as CSV for downstream clip
// extraction.
package segstore
