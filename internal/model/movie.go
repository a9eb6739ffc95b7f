package model

import "github.com/google/uuid"

// GenreSnapshot is a copy of a genre's id and name embedded in a movie.  It
// is captured when the movie is written and is not kept in sync with the
// genre afterwards; a later rename or delete leaves it as it was.
type GenreSnapshot struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// SnapshotOf copies g into a GenreSnapshot.
func SnapshotOf(g *Genre) GenreSnapshot {
	return GenreSnapshot{ID: g.ID, Name: g.Name}
}

// Movie is a rentable title.
type Movie struct {
	ID              uuid.UUID     `json:"_id"`
	Title           string        `json:"title"`
	Genre           GenreSnapshot `json:"genre"`
	NumberInStock   int           `json:"numberInStock"`
	DailyRentalRate float64       `json:"dailyRentalRate"`
}

// MovieInput is the create/replace payload for a movie.  The genre is
// referenced by id; its name is resolved server side.  Numeric fields are
// pointers so that an explicit zero is distinguishable from an omitted field.
type MovieInput struct {
	Title           string   `json:"title" validate:"required,min=1,max=255"`
	GenreID         string   `json:"genreId" validate:"required,uuid"`
	NumberInStock   *int     `json:"numberInStock" validate:"required,min=0,max=255"`
	DailyRentalRate *float64 `json:"dailyRentalRate" validate:"required,min=0,max=10,cents"`
}
