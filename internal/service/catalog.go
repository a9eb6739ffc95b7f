package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movie-rental-api/internal/model"
	"github.com/iliyamo/movie-rental-api/internal/queue"
	"github.com/iliyamo/movie-rental-api/internal/repository"
	"github.com/iliyamo/movie-rental-api/internal/validation"
)

// GenreStore is the persistence contract for genres.
type GenreStore interface {
	Create(ctx context.Context, g *model.Genre) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	List(ctx context.Context) ([]model.Genre, error)
	Update(ctx context.Context, g *model.Genre) error
	Delete(ctx context.Context, id uuid.UUID) (*model.Genre, error)
}

// MovieStore is the persistence contract for movies.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error)
	List(ctx context.Context) ([]model.Movie, error)
	Update(ctx context.Context, m *model.Movie) error
	Delete(ctx context.Context, id uuid.UUID) (*model.Movie, error)
}

// Catalog manages genres and movies.
//
// A movie stores a copy of its genre's id and name.  The copy is taken from
// the genre record whenever the movie is created or replaced, and a write
// naming a genre that does not exist fails with ErrUnknownGenre.  Genre
// renames and deletes only touch the genre: existing movies keep the
// snapshot they were written with until they are next replaced.
type Catalog struct {
	genres GenreStore
	movies MovieStore
	events queue.Publisher
	log    logrus.FieldLogger
}

// NewCatalog wires a Catalog.  A nil publisher disables events and a nil
// logger falls back to the logrus standard logger.
func NewCatalog(genres GenreStore, movies MovieStore, events queue.Publisher, log logrus.FieldLogger) *Catalog {
	if events == nil {
		events = queue.NopPublisher{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Catalog{genres: genres, movies: movies, events: events, log: log}
}

// publish sends an event after a committed write.  Failure is logged and not
// returned: the write already happened and the caller must see its result.
func (c *Catalog) publish(ctx context.Context, eventType string, payload any) {
	if err := c.events.Publish(ctx, eventType, payload); err != nil {
		c.log.WithError(err).WithField("event", eventType).Warn("publish catalog event failed")
	}
}

// ---- Genres ----

func (c *Catalog) ListGenres(ctx context.Context) ([]model.Genre, error) {
	return c.genres.List(ctx)
}

func (c *Catalog) GetGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	return c.genres.GetByID(ctx, id)
}

func (c *Catalog) CreateGenre(ctx context.Context, in model.GenreInput) (*model.Genre, error) {
	if err := check(validation.Genre, in); err != nil {
		return nil, err
	}
	g := &model.Genre{Name: in.Name}
	if err := c.genres.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return g, nil
}

// RenameGenre changes the genre's name.  Movies are not updated.
func (c *Catalog) RenameGenre(ctx context.Context, id uuid.UUID, in model.GenreInput) (*model.Genre, error) {
	if err := check(validation.Genre, in); err != nil {
		return nil, err
	}
	prev, err := c.genres.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g := &model.Genre{ID: id, Name: in.Name}
	if err := c.genres.Update(ctx, g); err != nil {
		return nil, err
	}
	if prev.Name != g.Name {
		c.publish(ctx, queue.TypeGenreRenamed, queue.GenreRenamedEvent{
			GenreID: id.String(), OldName: prev.Name, NewName: g.Name,
		})
	}
	return g, nil
}

// DeleteGenre removes the genre and returns it.  Movies are not updated.
func (c *Catalog) DeleteGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	g, err := c.genres.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, queue.TypeGenreDeleted, queue.GenreDeletedEvent{GenreID: id.String(), Name: g.Name})
	return g, nil
}

// ---- Movies ----

func (c *Catalog) ListMovies(ctx context.Context) ([]model.Movie, error) {
	return c.movies.List(ctx)
}

func (c *Catalog) GetMovie(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	return c.movies.GetByID(ctx, id)
}

// CreateMovie validates in, resolves its genre and persists the movie with a
// snapshot of that genre.  Nothing is written when the genre is unknown.
func (c *Catalog) CreateMovie(ctx context.Context, in model.MovieInput) (*model.Movie, error) {
	m, err := c.build(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := c.movies.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}
	c.publish(ctx, queue.TypeMovieWritten, movieWritten(m, true))
	return m, nil
}

// UpdateMovie replaces the movie identified by id.  The genre is looked up
// again and the snapshot is rebuilt from its current record, even when the
// genre id did not change.
func (c *Catalog) UpdateMovie(ctx context.Context, id uuid.UUID, in model.MovieInput) (*model.Movie, error) {
	m, err := c.build(ctx, in)
	if err != nil {
		return nil, err
	}
	m.ID = id
	if err := c.movies.Update(ctx, m); err != nil {
		return nil, err
	}
	c.publish(ctx, queue.TypeMovieWritten, movieWritten(m, false))
	return m, nil
}

func (c *Catalog) DeleteMovie(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	return c.movies.Delete(ctx, id)
}

// build validates in and assembles a movie carrying a fresh genre snapshot.
func (c *Catalog) build(ctx context.Context, in model.MovieInput) (*model.Movie, error) {
	if err := check(validation.Movie, in); err != nil {
		return nil, err
	}
	genreID, err := uuid.Parse(in.GenreID)
	if err != nil {
		return nil, ErrUnknownGenre
	}
	g, err := c.genres.GetByID(ctx, genreID)
	if errors.Is(err, repository.ErrGenreNotFound) {
		return nil, ErrUnknownGenre
	}
	if err != nil {
		return nil, fmt.Errorf("lookup genre: %w", err)
	}
	return &model.Movie{
		Title:           in.Title,
		Genre:           model.SnapshotOf(g),
		NumberInStock:   *in.NumberInStock,
		DailyRentalRate: *in.DailyRentalRate,
	}, nil
}

func movieWritten(m *model.Movie, created bool) queue.MovieWrittenEvent {
	return queue.MovieWrittenEvent{
		MovieID:   m.ID.String(),
		Title:     m.Title,
		GenreID:   m.Genre.ID.String(),
		GenreName: m.Genre.Name,
		Created:   created,
	}
}
