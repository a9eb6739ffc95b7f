// Package queue defines catalog events and publishes them to the message
// broker.  Events are informational: movies keep the genre snapshot they
// were written with, so a consumer that wants movie listings to follow a
// rename has to reconcile them itself from GenreRenamedEvent.
package queue

import "time"

// Event types, also used as the AMQP message type.
const (
	TypeGenreRenamed = "genre.renamed"
	TypeGenreDeleted = "genre.deleted"
	TypeMovieWritten = "movie.written"
)

// Envelope wraps every published payload.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// GenreRenamedEvent is published after a genre's name changes.  Movies that
// embedded OldName still carry it.
type GenreRenamedEvent struct {
	GenreID string `json:"genre_id"`
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// GenreDeletedEvent is published after a genre is removed.  Movies that
// referenced it keep their snapshot.
type GenreDeletedEvent struct {
	GenreID string `json:"genre_id"`
	Name    string `json:"name"`
}

// MovieWrittenEvent is published after a movie is created or replaced and
// records the genre snapshot that was stored with it.
type MovieWrittenEvent struct {
	MovieID   string `json:"movie_id"`
	Title     string `json:"title"`
	GenreID   string `json:"genre_id"`
	GenreName string `json:"genre_name"`
	Created   bool   `json:"created"`
}
