package requests

type CreateBlog struct {
	Title            string       `json:"title" validate:"required"`
	Content          string       `json:"content" validate:"required"`
	ShortDescription string       `json:"shortDescription" validate:"required"`
	Author           string       `json:"author" validate:"required"`
	Image            *ImageUpload `json:"-" validate:"-"`
}

type UpdateBlog struct {
	Title            *string      `json:"title" validate:"omitempty,min=1"`
	Content          *string      `json:"content" validate:"omitempty,min=1"`
	ShortDescription *string      `json:"shortDescription" validate:"omitempty,min=1"`
	Author           *string      `json:"author" validate:"omitempty,min=1"`
	Image            *ImageUpload `json:"-" validate:"-"`
}
