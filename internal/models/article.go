package models

import "time"

// Article is one travel-magazine post. Unlike campers it carries a
// single category and may embed image blocks in its content.
type Article struct {
	ID            uint      `json:"id,omitempty"`
	Title         string    `json:"title" form:"title"`
	Description   string    `json:"description" form:"description"`
	Category      string    `json:"category" form:"category"`
	FeaturedImage string    `json:"featuredImage"`
	ImageTitle    string    `json:"imageTitle" form:"imageTitle"`
	Excerpt       string    `json:"excerpt"`
	Content       BlockList `json:"content"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}
