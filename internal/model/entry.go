package model

import "github.com/webmarks/webmarks-service/pkg/timex"

const TableNameEntry = "entry"

// Entry mapped from table <entry>
type Entry struct {
	ID                int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	UID               int64      `gorm:"column:uid;not null;index:idx_entry_uid" json:"uid" form:"uid"`
	URL               string     `gorm:"column:url;type:text" json:"url" form:"url"`
	Title             string     `gorm:"column:title;type:text" json:"title" form:"title"`
	Notes             string     `gorm:"column:notes;type:text" json:"notes" form:"notes"`
	Quotes            string     `gorm:"column:quotes;type:text" json:"quotes" form:"quotes"`
	Location          string     `gorm:"column:location;type:text" json:"location" form:"location"`
	Context           string     `gorm:"column:context;type:text" json:"context" form:"context"`
	Song              string     `gorm:"column:song;type:text" json:"song" form:"song"`
	ScreenshotImageID *int64     `gorm:"column:screenshot_image_id" json:"screenshotImageId" form:"screenshotImageId"`
	CreatedAt         timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt         timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Entry's table name
func (*Entry) TableName() string {
	return TableNameEntry
}
