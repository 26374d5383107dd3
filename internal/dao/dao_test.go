package dao

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/webmarks/webmarks-service/internal/domain"
	"github.com/webmarks/webmarks-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, ""))
	return New(db, context.Background())
}

func TestEntryRepositoryCRUD(t *testing.T) {
	d := newTestDao(t)
	repo := NewEntryRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Entry{
		UID:   7,
		URL:   "https://go.dev",
		Title: "Go",
		Notes: "language homepage",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", got.URL)

	// wrong owner cannot see the entry
	_, err = repo.GetByID(ctx, created.ID, 8)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	created.Title = "Go homepage"
	updated, err := repo.Update(ctx, created, 7)
	require.NoError(t, err)
	assert.Equal(t, "Go homepage", updated.Title)

	require.NoError(t, repo.Delete(ctx, created.ID, 7))
	_, err = repo.GetByID(ctx, created.ID, 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// deleting again reports the miss
	assert.ErrorIs(t, repo.Delete(ctx, created.ID, 7), gorm.ErrRecordNotFound)
}

func TestEntryRepositoryDeleteCascadesLinks(t *testing.T) {
	d := newTestDao(t)
	entryRepo := NewEntryRepository(d)
	tagRepo := NewTagRepository(d)
	linkRepo := NewTagLinkRepository(d)
	ctx := context.Background()

	entry, err := entryRepo.Create(ctx, &domain.Entry{UID: 7, URL: "https://a"})
	require.NoError(t, err)
	tag, err := tagRepo.ResolveOrCreate(ctx, 7, "go")
	require.NoError(t, err)
	require.NoError(t, linkRepo.ReplaceForEntry(ctx, entry.ID, []int64{tag.ID}))

	require.NoError(t, entryRepo.Delete(ctx, entry.ID, 7))

	links, err := linkRepo.ListByEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestEntryRepositoryListOrderAndScope(t *testing.T) {
	d := newTestDao(t)
	repo := NewEntryRepository(d)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &domain.Entry{UID: 7, URL: fmt.Sprintf("https://%d", i)})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.Entry{UID: 8, URL: "https://other"})
	require.NoError(t, err)

	mine, err := repo.List(ctx, 7, false, 0)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	// newest first, creation times may collide so ids break the tie
	assert.Greater(t, mine[0].ID, mine[2].ID)

	all, err := repo.List(ctx, 0, true, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	limited, err := repo.List(ctx, 7, false, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestTagRepositoryResolveOrCreate(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	ctx := context.Background()

	first, err := repo.ResolveOrCreate(ctx, 7, "  go  ")
	require.NoError(t, err)
	assert.Equal(t, "go", first.Title)
	assert.Equal(t, int64(7), first.UID)

	// same owner and title resolves to the same row
	second, err := repo.ResolveOrCreate(ctx, 7, "go")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// another owner gets their own row
	other, err := repo.ResolveOrCreate(ctx, 8, "go")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestTagRepositoryResolveOrCreateConflict(t *testing.T) {
	// file backed so the competing insert below can commit on its own
	// connection while the repository's create is in flight
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tag.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, ""))
	d := New(db, context.Background())
	repo := NewTagRepository(d)
	ctx := context.Background()

	// slip a competing row in after the lookup missed but before the
	// insert runs, the way a second request resolving the same title would
	var fired bool
	var insertErr error
	err = db.Callback().Create().Before("gorm:create").Register("tag_conflict_insert", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*model.Tag); !ok || fired {
			return
		}
		fired = true
		insertErr = tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO tag (uid, title) VALUES (?, ?)", 7, "go").Error
	})
	require.NoError(t, err)

	resolved, err := repo.ResolveOrCreate(ctx, 7, "go")
	require.NoError(t, err)
	require.True(t, fired)
	require.NoError(t, insertErr)

	// the loser resolves to the committed winner and no second row exists
	var winner model.Tag
	require.NoError(t, db.Where("uid = ? AND title = ?", 7, "go").First(&winner).Error)
	assert.Equal(t, winner.ID, resolved.ID)

	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Where("uid = ? AND title = ?", 7, "go").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// resolving again takes the plain lookup path to the same row
	again, err := repo.ResolveOrCreate(ctx, 7, "go")
	require.NoError(t, err)
	assert.Equal(t, resolved.ID, again.ID)
}

func TestTagRepositoryListByOwner(t *testing.T) {
	d := newTestDao(t)
	repo := NewTagRepository(d)
	ctx := context.Background()

	for _, title := range []string{"web", "go", "db"} {
		_, err := repo.ResolveOrCreate(ctx, 7, title)
		require.NoError(t, err)
	}
	_, err := repo.ResolveOrCreate(ctx, 8, "go")
	require.NoError(t, err)

	tags, err := repo.ListByOwner(ctx, 7)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "db", tags[0].Title)
	assert.Equal(t, "go", tags[1].Title)
	assert.Equal(t, "web", tags[2].Title)
}

func TestTagLinkRepositoryReplaceForEntry(t *testing.T) {
	d := newTestDao(t)
	linkRepo := NewTagLinkRepository(d)
	ctx := context.Background()

	require.NoError(t, linkRepo.ReplaceForEntry(ctx, 1, []int64{10, 20, 30}))

	links, err := linkRepo.ListByEntry(ctx, 1)
	require.NoError(t, err)
	require.Len(t, links, 3)
	for i, l := range links {
		assert.Equal(t, i+1, l.Sort)
	}
	assert.Equal(t, int64(10), links[0].TagID)
	assert.Equal(t, int64(30), links[2].TagID)

	// replacement drops the old set entirely
	require.NoError(t, linkRepo.ReplaceForEntry(ctx, 1, []int64{30}))
	links, err = linkRepo.ListByEntry(ctx, 1)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, int64(30), links[0].TagID)
	assert.Equal(t, 1, links[0].Sort)

	require.NoError(t, linkRepo.ReplaceForEntry(ctx, 1, nil))
	links, err = linkRepo.ListByEntry(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestTagLinkRepositoryCountByOwner(t *testing.T) {
	d := newTestDao(t)
	entryRepo := NewEntryRepository(d)
	tagRepo := NewTagRepository(d)
	linkRepo := NewTagLinkRepository(d)
	ctx := context.Background()

	goTag, err := tagRepo.ResolveOrCreate(ctx, 7, "go")
	require.NoError(t, err)
	webTag, err := tagRepo.ResolveOrCreate(ctx, 7, "web")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		entry, err := entryRepo.Create(ctx, &domain.Entry{UID: 7, URL: fmt.Sprintf("https://%d", i)})
		require.NoError(t, err)
		tagIDs := []int64{goTag.ID}
		if i == 0 {
			tagIDs = append(tagIDs, webTag.ID)
		}
		require.NoError(t, linkRepo.ReplaceForEntry(ctx, entry.ID, tagIDs))
	}

	// another owner's entry must not count
	otherEntry, err := entryRepo.Create(ctx, &domain.Entry{UID: 8, URL: "https://other"})
	require.NoError(t, err)
	otherTag, err := tagRepo.ResolveOrCreate(ctx, 8, "go")
	require.NoError(t, err)
	require.NoError(t, linkRepo.ReplaceForEntry(ctx, otherEntry.ID, []int64{otherTag.ID}))

	counts, err := linkRepo.CountByOwner(ctx, 7, 25)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, goTag.ID, counts[0].TagID)
	assert.Equal(t, int64(3), counts[0].Count)
	assert.Equal(t, webTag.ID, counts[1].TagID)
	assert.Equal(t, int64(1), counts[1].Count)

	limited, err := linkRepo.CountByOwner(ctx, 7, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestTagLinkRepositoryListDangling(t *testing.T) {
	d := newTestDao(t)
	entryRepo := NewEntryRepository(d)
	tagRepo := NewTagRepository(d)
	linkRepo := NewTagLinkRepository(d)
	ctx := context.Background()

	entry, err := entryRepo.Create(ctx, &domain.Entry{UID: 7, URL: "https://a"})
	require.NoError(t, err)
	tag, err := tagRepo.ResolveOrCreate(ctx, 7, "go")
	require.NoError(t, err)
	require.NoError(t, linkRepo.ReplaceForEntry(ctx, entry.ID, []int64{tag.ID}))

	dangling, err := linkRepo.ListDangling(ctx)
	require.NoError(t, err)
	assert.Empty(t, dangling)

	// a link pointing at a missing tag is dangling
	require.NoError(t, linkRepo.ReplaceForEntry(ctx, entry.ID, []int64{tag.ID, 999}))
	dangling, err = linkRepo.ListDangling(ctx)
	require.NoError(t, err)
	require.Len(t, dangling, 1)
	assert.Equal(t, int64(999), dangling[0].TagID)
}

func TestDaoTransactionRollback(t *testing.T) {
	d := newTestDao(t)
	repo := NewEntryRepository(d)
	ctx := context.Background()

	err := d.Transaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, &domain.Entry{UID: 7, URL: "https://a"}); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	list, err := repo.List(ctx, 7, false, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
