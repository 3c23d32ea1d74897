package models

import (
	"doctor-appointment-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Blog struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title            string             `json:"title" bson:"title"`
	Content          string             `json:"content" bson:"content"`
	ShortDescription string             `json:"shortDescription" bson:"shortDescription"`
	Author           string             `json:"author" bson:"author"`
	ImageURL         string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	TimeModel        `bson:",inline"`
}

func (b Blog) ConvertIntoResponse() responses.Blog {
	return responses.Blog{
		ID:               b.ID.Hex(),
		Title:            b.Title,
		Content:          b.Content,
		ShortDescription: b.ShortDescription,
		Author:           b.Author,
		ImageURL:         b.ImageURL,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
