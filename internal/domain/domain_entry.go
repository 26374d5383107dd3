// Package domain defines domain models and interfaces
package domain

import "time"

// Entry is a saved bookmark/annotation record owned by one user
type Entry struct {
	ID                int64
	UID               int64
	URL               string
	Title             string
	Notes             string
	Quotes            string
	Location          string
	Context           string
	Song              string
	ScreenshotImageID *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
