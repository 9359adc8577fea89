// Package page defines the identifiers the root model registers pages under.
package page

type PageID string

// PageChangeMsg asks the root model to switch to another page.
type PageChangeMsg struct {
	ID PageID
}
