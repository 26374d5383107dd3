package dto

// TagCloudRequest asks for the caller's most used tags
type TagCloudRequest struct {
	Limit int `json:"limit" form:"limit" binding:"gte=0,lte=100"`
}

// TagCloudItem is one tag cloud row
type TagCloudItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

// TagResponse is one tag owned by the caller
type TagResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
}
