package model

import "github.com/webmarks/webmarks-service/pkg/timex"

const TableNameTag = "tag"

// Tag mapped from table <tag>.
// UID 0 is the unowned sentinel for rows created before tags became
// owner-scoped; the ownership migration resolves those.
type Tag struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;default:0;uniqueIndex:udx_tag_uid_title,priority:1" json:"uid" form:"uid"`
	Title     string     `gorm:"column:title;not null;uniqueIndex:udx_tag_uid_title,priority:2" json:"title" form:"title"`
	Color     string     `gorm:"column:color" json:"color" form:"color"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Tag's table name
func (*Tag) TableName() string {
	return TableNameTag
}
