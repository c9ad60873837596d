// Package memstore provides the in-memory stores backing the lending engine.
// The engine is specified as a single-process authority over lending state, so
// these stores play the role the persistence repositories would in a
// database-backed deployment: same constructor-and-methods shape, a map and a
// mutex instead of a connection handle. Nothing survives a restart.
package memstore

import (
	"fmt"
	"sync"

	"libralend/internal/core/domain"
)

// BookStore is the catalog: every title known to the library, keyed by ISBN.
type BookStore struct {
	mu    sync.RWMutex
	books map[string]*domain.Book
}

// NewBookStore creates an empty catalog.
func NewBookStore() *BookStore {
	return &BookStore{books: make(map[string]*domain.Book)}
}

// Add registers a title. ISBN is the sole equality key, so a second add with
// the same ISBN is rejected.
func (s *BookStore) Add(book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[book.ISBN()]; ok {
		return fmt.Errorf("%w: ISBN %s", domain.ErrDuplicate, book.ISBN())
	}
	s.books[book.ISBN()] = book
	return nil
}

// GetByISBN finds a title.
func (s *BookStore) GetByISBN(isbn string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[isbn]
	if !ok {
		return nil, fmt.Errorf("%w: ISBN %s", domain.ErrNotFound, isbn)
	}
	return book, nil
}

// FindCopy resolves a copy key to the live copy.
func (s *BookStore) FindCopy(key domain.CopyKey) (*domain.BookCopy, error) {
	book, err := s.GetByISBN(key.ISBN)
	if err != nil {
		return nil, err
	}
	return book.Copy(key.Number)
}

// All returns a snapshot of the catalog.
func (s *BookStore) All() []*domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Book, 0, len(s.books))
	for _, book := range s.books {
		out = append(out, book)
	}
	return out
}

// Count returns the number of titles in the catalog.
func (s *BookStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}
