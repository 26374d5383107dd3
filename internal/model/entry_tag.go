package model

import "github.com/webmarks/webmarks-service/pkg/timex"

const TableNameEntryTag = "entry_tag"

// EntryTag mapped from table <entry_tag>.
// The composite primary key keeps one link per (entry, tag); sort is the
// 1-based display position of the tag within its entry.
type EntryTag struct {
	EntryID   int64      `gorm:"column:entry_id;primaryKey;index:idx_entry_tag_entry" json:"entryId" form:"entryId"`
	TagID     int64      `gorm:"column:tag_id;primaryKey;index:idx_entry_tag_tag" json:"tagId" form:"tagId"`
	Sort      int        `gorm:"column:sort;not null" json:"sort" form:"sort"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName EntryTag's table name
func (*EntryTag) TableName() string {
	return TableNameEntryTag
}
