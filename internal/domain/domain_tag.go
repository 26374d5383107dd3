package domain

import "time"

// UnownedUID is the owner sentinel of tags created before tags became
// owner-scoped. The ownership migration replaces it; new writes never
// produce it.
const UnownedUID int64 = 0

// Tag is a short label attachable to entries, owned by exactly one user
type Tag struct {
	ID        int64
	UID       int64
	Title     string
	Color     string
	CreatedAt time.Time
}

// TagLink is the ordered association between one entry and one tag.
// Sort is 1-based and unique within an entry.
type TagLink struct {
	EntryID int64
	TagID   int64
	Sort    int
}

// TagCount is one row of a tag cloud: a tag and how many of the owner's
// entries link to it
type TagCount struct {
	TagID int64
	Title string
	Color string
	Count int64
}
