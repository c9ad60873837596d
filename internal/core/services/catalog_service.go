package services

import (
	"log"
	"time"

	"libralend/internal/adapters/memstore"
	"libralend/internal/config"
	"libralend/internal/core/domain"
)

// CatalogService handles catalog administration and the read-only query
// surface: find-by-attribute lookups and per-book availability.
type CatalogService struct {
	books *memstore.BookStore
	cfg   *config.Config
	now   func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(books *memstore.BookStore, cfg *config.Config) *CatalogService {
	return &CatalogService{
		books: books,
		cfg:   cfg,
		now:   time.Now,
	}
}

// AddBookInput represents a new book registration
type AddBookInput struct {
	ISBN        string    `json:"isbn" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Author      string    `json:"author" validate:"required"`
	Pages       int       `json:"pages" validate:"required,gt=0"`
	Subject     string    `json:"subject" validate:"required"`
	Publisher   string    `json:"publisher" validate:"required"`
	PublishedAt time.Time `json:"published_at" validate:"required"`
}

// AddCopyInput represents a new copy placement
type AddCopyInput struct {
	Section  string `json:"section" validate:"required"`
	Shelf    int    `json:"shelf" validate:"required,gt=0"`
	Position int    `json:"position" validate:"required,gt=0"`
}

// BookResponse is the catalog view of a title
type BookResponse struct {
	ISBN        string    `json:"isbn"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Subject     string    `json:"subject"`
	Pages       int       `json:"pages"`
	Publisher   string    `json:"publisher"`
	PublishedAt time.Time `json:"published_at"`
	CopyCount   int       `json:"copy_count"`
}

// CopyResponse is the catalog view of a single physical copy
type CopyResponse struct {
	Key         domain.CopyKey       `json:"key"`
	Location    domain.ShelfLocation `json:"location"`
	Available   bool                 `json:"available"`
	QueueLength int                  `json:"queue_length"`
}

// AvailabilityResponse answers the aggregate availability queries for a title
type AvailabilityResponse struct {
	ISBN             string         `json:"isbn"`
	IssuableCopies   []CopyResponse `json:"issuable_copies"`
	ReservableCopies []CopyResponse `json:"reservable_copies"`
	NextAvailableAt  *time.Time     `json:"next_available_at,omitempty"`
}

// AddBook registers a new title in the catalog.
func (s *CatalogService) AddBook(input *AddBookInput) (*BookResponse, error) {
	subject, err := domain.ParseSubject(input.Subject)
	if err != nil {
		return nil, err
	}
	book, err := domain.NewBook(input.ISBN, input.Title, input.Author, input.Pages, subject, input.Publisher, input.PublishedAt)
	if err != nil {
		return nil, err
	}
	if err := s.books.Add(book); err != nil {
		return nil, err
	}

	log.Printf("📚 Book added to catalog: %s (%s)", book.Title(), book.ISBN())
	resp := s.toBookResponse(book)
	return &resp, nil
}

// AddCopy places a new physical copy of a title on a shelf.
func (s *CatalogService) AddCopy(isbn string, input *AddCopyInput) (*CopyResponse, error) {
	book, err := s.books.GetByISBN(isbn)
	if err != nil {
		return nil, err
	}
	section, err := domain.ParseSubject(input.Section)
	if err != nil {
		return nil, err
	}
	location, err := domain.NewShelfLocation(section, input.Shelf, input.Position)
	if err != nil {
		return nil, err
	}
	bookCopy, err := book.AddCopy(location)
	if err != nil {
		return nil, err
	}

	log.Printf("📦 Copy %s shelved at %s", bookCopy.Key(), location)
	resp := s.toCopyResponse(bookCopy)
	return &resp, nil
}

// RemoveCopy withdraws a copy from circulation. Fails with NotFound for an
// unknown copy number and CopyInUse while the copy is issued or reserved.
func (s *CatalogService) RemoveCopy(isbn string, number int) error {
	book, err := s.books.GetByISBN(isbn)
	if err != nil {
		return err
	}
	return book.RemoveCopy(number)
}

// RelocateCopy moves a copy to a new shelf location.
func (s *CatalogService) RelocateCopy(key domain.CopyKey, input *AddCopyInput) error {
	bookCopy, err := s.books.FindCopy(key)
	if err != nil {
		return err
	}
	section, err := domain.ParseSubject(input.Section)
	if err != nil {
		return err
	}
	location, err := domain.NewShelfLocation(section, input.Shelf, input.Position)
	if err != nil {
		return err
	}

	bookCopy.Lock()
	bookCopy.Relocate(location)
	bookCopy.Unlock()
	return nil
}

// GetBook returns the catalog view of one title.
func (s *CatalogService) GetBook(isbn string) (*BookResponse, error) {
	book, err := s.books.GetByISBN(isbn)
	if err != nil {
		return nil, err
	}
	resp := s.toBookResponse(book)
	return &resp, nil
}

// AllBooks returns the whole catalog.
func (s *CatalogService) AllBooks() []BookResponse {
	return s.toBookResponses(s.books.All())
}

// FindByTitle returns the titles matching exactly.
func (s *CatalogService) FindByTitle(title string) []BookResponse {
	return s.findBooks(func(b *domain.Book) bool { return b.Title() == title })
}

// FindByAuthor returns the titles by the given author.
func (s *CatalogService) FindByAuthor(author string) []BookResponse {
	return s.findBooks(func(b *domain.Book) bool { return b.Author() == author })
}

// FindBySubject returns the titles filed under the given subject.
func (s *CatalogService) FindBySubject(subject string) ([]BookResponse, error) {
	parsed, err := domain.ParseSubject(subject)
	if err != nil {
		return nil, err
	}
	return s.findBooks(func(b *domain.Book) bool { return b.Subject() == parsed }), nil
}

// FindPublishedBetween returns the titles published inside [from, to]. A zero
// bound leaves that side open.
func (s *CatalogService) FindPublishedBetween(from, to time.Time) []BookResponse {
	return s.findBooks(func(b *domain.Book) bool {
		publishedAt := b.PublishedAt()
		if !from.IsZero() && publishedAt.Before(from) {
			return false
		}
		if !to.IsZero() && publishedAt.After(to) {
			return false
		}
		return true
	})
}

// Copies returns snapshots of every copy of a title.
func (s *CatalogService) Copies(isbn string) ([]CopyResponse, error) {
	book, err := s.books.GetByISBN(isbn)
	if err != nil {
		return nil, err
	}
	return s.toCopyResponses(book.Copies()), nil
}

// Availability answers the aggregate availability queries for one title.
func (s *CatalogService) Availability(isbn string) (*AvailabilityResponse, error) {
	book, err := s.books.GetByISBN(isbn)
	if err != nil {
		return nil, err
	}

	resp := &AvailabilityResponse{
		ISBN:             book.ISBN(),
		IssuableCopies:   s.toCopyResponses(book.IssuableCopies()),
		ReservableCopies: s.toCopyResponses(book.ReservableCopies(s.cfg.Lending.MaxReservationsPerCopy)),
	}
	if nextAt, ok := book.NextAvailableAt(s.now()); ok {
		resp.NextAvailableAt = &nextAt
	}
	return resp, nil
}

func (s *CatalogService) findBooks(match func(*domain.Book) bool) []BookResponse {
	var out []*domain.Book
	for _, book := range s.books.All() {
		if match(book) {
			out = append(out, book)
		}
	}
	return s.toBookResponses(out)
}

func (s *CatalogService) toBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ISBN:        book.ISBN(),
		Title:       book.Title(),
		Author:      book.Author(),
		Subject:     string(book.Subject()),
		Pages:       book.Pages(),
		Publisher:   book.Publisher(),
		PublishedAt: book.PublishedAt(),
		CopyCount:   len(book.Copies()),
	}
}

func (s *CatalogService) toBookResponses(books []*domain.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, book := range books {
		out = append(out, s.toBookResponse(book))
	}
	return out
}

func (s *CatalogService) toCopyResponse(bookCopy *domain.BookCopy) CopyResponse {
	bookCopy.Lock()
	defer bookCopy.Unlock()

	return CopyResponse{
		Key:         bookCopy.Key(),
		Location:    bookCopy.Location(),
		Available:   bookCopy.AvailableToIssue(),
		QueueLength: bookCopy.QueueLength(),
	}
}

func (s *CatalogService) toCopyResponses(copies []*domain.BookCopy) []CopyResponse {
	out := make([]CopyResponse, 0, len(copies))
	for _, bookCopy := range copies {
		out = append(out, s.toCopyResponse(bookCopy))
	}
	return out
}
