// Command vodsnip detects spans of a recorded stream during which an
// embedded video is on screen, and extracts those spans as clips. See the
// detect and process subcommands for the two entry points.
package main
