package responses

import "time"

type Blog struct {
	ID               string    `json:"_id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	ShortDescription string    `json:"shortDescription"`
	Author           string    `json:"author"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
