// Package memstore provides in-memory implementations of the repository
// method sets.  They return the same sentinel errors as the MySQL
// repositories and hand out copies, so callers cannot mutate stored state
// through a returned pointer.  Used by service and handler tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-rental-api/internal/model"
	"github.com/iliyamo/movie-rental-api/internal/repository"
)

// table is a mutex guarded map keyed by record id.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]T
}

func newTable[T any]() *table[T] { return &table[T]{rows: map[uuid.UUID]T{}} }

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id uuid.UUID, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = v
}

func (t *table[T]) replace(id uuid.UUID, v T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = v
	return true
}

func (t *table[T]) remove(id uuid.UUID) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if ok {
		delete(t.rows, id)
	}
	return v, ok
}

func (t *table[T]) all(less func(a, b T) bool) []T {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		out = append(out, v)
	}
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// Customers mirrors repository.CustomerRepo.
type Customers struct{ t *table[model.Customer] }

func NewCustomers() *Customers { return &Customers{t: newTable[model.Customer]()} }

func (s *Customers) Create(_ context.Context, c *model.Customer) error {
	ensureID(&c.ID)
	s.t.put(c.ID, *c)
	return nil
}

func (s *Customers) GetByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return &c, nil
}

func (s *Customers) List(context.Context) ([]model.Customer, error) {
	return s.t.all(func(a, b model.Customer) bool { return a.Name < b.Name }), nil
}

func (s *Customers) Update(_ context.Context, c *model.Customer) error {
	if !s.t.replace(c.ID, *c) {
		return repository.ErrCustomerNotFound
	}
	return nil
}

func (s *Customers) Delete(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := s.t.remove(id)
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return &c, nil
}

// Genres mirrors repository.GenreRepo.
type Genres struct{ t *table[model.Genre] }

func NewGenres() *Genres { return &Genres{t: newTable[model.Genre]()} }

func (s *Genres) Create(_ context.Context, g *model.Genre) error {
	ensureID(&g.ID)
	s.t.put(g.ID, *g)
	return nil
}

func (s *Genres) GetByID(_ context.Context, id uuid.UUID) (*model.Genre, error) {
	g, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrGenreNotFound
	}
	return &g, nil
}

func (s *Genres) List(context.Context) ([]model.Genre, error) {
	return s.t.all(func(a, b model.Genre) bool { return a.Name < b.Name }), nil
}

func (s *Genres) Update(_ context.Context, g *model.Genre) error {
	if !s.t.replace(g.ID, *g) {
		return repository.ErrGenreNotFound
	}
	return nil
}

func (s *Genres) Delete(_ context.Context, id uuid.UUID) (*model.Genre, error) {
	g, ok := s.t.remove(id)
	if !ok {
		return nil, repository.ErrGenreNotFound
	}
	return &g, nil
}

// Movies mirrors repository.MovieRepo.
type Movies struct{ t *table[model.Movie] }

func NewMovies() *Movies { return &Movies{t: newTable[model.Movie]()} }

func (s *Movies) Create(_ context.Context, m *model.Movie) error {
	ensureID(&m.ID)
	s.t.put(m.ID, *m)
	return nil
}

func (s *Movies) GetByID(_ context.Context, id uuid.UUID) (*model.Movie, error) {
	m, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	return &m, nil
}

func (s *Movies) List(context.Context) ([]model.Movie, error) {
	return s.t.all(func(a, b model.Movie) bool { return a.Title < b.Title }), nil
}

func (s *Movies) Update(_ context.Context, m *model.Movie) error {
	if !s.t.replace(m.ID, *m) {
		return repository.ErrMovieNotFound
	}
	return nil
}

func (s *Movies) Delete(_ context.Context, id uuid.UUID) (*model.Movie, error) {
	m, ok := s.t.remove(id)
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	return &m, nil
}

// Users mirrors repository.UserRepo, including the unique email constraint.
type Users struct {
	mu      sync.Mutex
	t       *table[model.User]
	byEmail map[string]uuid.UUID
}

func NewUsers() *Users {
	return &Users{t: newTable[model.User](), byEmail: map[string]uuid.UUID{}}
}

func (s *Users) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&u.ID)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, taken := s.byEmail[u.Email]; taken {
		return repository.ErrEmailExists
	}
	s.byEmail[u.Email] = u.ID
	s.t.put(u.ID, *u)
	return nil
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	s.mu.Unlock()
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *Users) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}
