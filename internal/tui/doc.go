// Package tui renders the terminal views of the sync client: the
// collection status table and the interactive conflict-resolution prompt.
package tui
