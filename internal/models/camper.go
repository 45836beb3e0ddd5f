package models

import "time"

// Camper is the wire shape of one rental listing as the content API
// stores it. Category is multi-valued for campers.
type Camper struct {
	ID            uint      `json:"id,omitempty"`
	Title         string    `json:"title" form:"title"`
	Description   string    `json:"description" form:"description"`
	Categories    []string  `json:"category"`
	FeaturedImage string    `json:"featuredImage"`
	ImageTitle    string    `json:"imageTitle" form:"imageTitle"`
	Excerpt       string    `json:"excerpt"`
	Price         float64   `json:"price" form:"price"`
	Currency      string    `json:"currency" form:"currency"`
	Location      string    `json:"location" form:"location"`
	Status        string    `json:"status" form:"status"`
	Content       BlockList `json:"content"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}
