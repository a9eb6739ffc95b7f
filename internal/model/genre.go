package model

import "github.com/google/uuid"

// Genre is the authoritative record for a genre's identity and label.
type Genre struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// GenreInput is the create/rename payload for a genre.
type GenreInput struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}
