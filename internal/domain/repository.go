package domain

import "context"

// EntryRepository is the entry store interface
type EntryRepository interface {
	// GetByID gets an entry by id scoped to its owner
	GetByID(ctx context.Context, id, uid int64) (*Entry, error)

	// Create creates an entry
	Create(ctx context.Context, entry *Entry) (*Entry, error)

	// Update updates an entry owned by uid
	Update(ctx context.Context, entry *Entry, uid int64) (*Entry, error)

	// Delete deletes an entry owned by uid together with its tag links
	Delete(ctx context.Context, id, uid int64) error

	// List returns entries ordered by creation time descending.
	// uid 0 with allUsers selects every owner. limit 0 means no limit.
	List(ctx context.Context, uid int64, allUsers bool, limit int) ([]*Entry, error)
}

// TagRepository is the tag store interface
type TagRepository interface {
	// GetByID gets a tag by id
	GetByID(ctx context.Context, id int64) (*Tag, error)

	// ResolveOrCreate returns the tag owned by uid with the given trimmed
	// title, creating it when missing. Safe under concurrent duplicate
	// calls: an insert hitting the (uid, title) unique index re-selects
	// instead of failing.
	ResolveOrCreate(ctx context.Context, uid int64, title string) (*Tag, error)

	// ListByOwner lists the tags owned by uid; UnownedUID lists dead tags
	ListByOwner(ctx context.Context, uid int64) ([]*Tag, error)

	// ListByIDs loads tags for a set of ids
	ListByIDs(ctx context.Context, ids []int64) ([]*Tag, error)
}

// TagLinkRepository is the entry-tag link store interface
type TagLinkRepository interface {
	// ReplaceForEntry atomically replaces the links of an entry with one
	// link per tag id, sort = 1-based position
	ReplaceForEntry(ctx context.Context, entryID int64, tagIDs []int64) error

	// ListByEntry returns the links of an entry ascending by sort
	ListByEntry(ctx context.Context, entryID int64) ([]*TagLink, error)

	// ListByEntryIDs returns the links of a set of entries, each entry's
	// links ascending by sort
	ListByEntryIDs(ctx context.Context, entryIDs []int64) ([]*TagLink, error)

	// ListByTag returns the entry ids linked to a tag
	ListByTag(ctx context.Context, tagID int64) ([]int64, error)

	// DeleteByEntry removes all links of an entry
	DeleteByEntry(ctx context.Context, entryID int64) error

	// CountByOwner counts links grouped by tag over entries owned by uid,
	// ordered by count descending, limited
	CountByOwner(ctx context.Context, uid int64, limit int) ([]*TagCount, error)

	// ListDangling returns links whose entry or tag row no longer exists
	ListDangling(ctx context.Context) ([]*TagLink, error)
}

// TxManager runs a function inside one storage transaction
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
