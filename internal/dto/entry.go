// Package dto defines the request and response shapes of the HTTP API
package dto

// EntrySaveRequest creates an entry when ID is zero, otherwise updates it.
// Tags is the comma separated tag list; order is preserved.
type EntrySaveRequest struct {
	ID                int64  `json:"id" form:"id"`
	URL               string `json:"url" form:"url" binding:"max=2048"`
	Title             string `json:"title" form:"title" binding:"max=1024"`
	Notes             string `json:"notes" form:"notes"`
	Quotes            string `json:"quotes" form:"quotes"`
	Location          string `json:"location" form:"location"`
	Context           string `json:"context" form:"context"`
	Song              string `json:"song" form:"song"`
	ScreenshotImageID *int64 `json:"screenshotImageId" form:"screenshotImageId"`
	Tags              string `json:"tags" form:"tags"`
}

// EntryGetRequest fetches one entry by id
type EntryGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gt=0"`
}

// EntryDeleteRequest deletes one entry by id
type EntryDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gt=0"`
}

// EntryListRequest lists or searches entries. AllUsers is honored only for
// the configured admin user.
type EntryListRequest struct {
	Search   string `json:"search" form:"search" binding:"max=512"`
	AllUsers bool   `json:"allUsers" form:"allUsers"`
	Limit    int    `json:"limit" form:"limit" binding:"gte=0,lte=500"`
}

// TagItem is one tag attached to an entry, in display order
type TagItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// EntryResponse is one entry with its ordered tag list
type EntryResponse struct {
	ID                int64      `json:"id"`
	UID               int64      `json:"uid"`
	URL               string     `json:"url"`
	Title             string     `json:"title"`
	Notes             string     `json:"notes"`
	Quotes            string     `json:"quotes"`
	Location          string     `json:"location"`
	Context           string     `json:"context"`
	Song              string     `json:"song"`
	ScreenshotImageID *int64     `json:"screenshotImageId"`
	Tags              []*TagItem `json:"tags"`
	CreatedAt         string     `json:"createdAt"`
	UpdatedAt         string     `json:"updatedAt"`
}
