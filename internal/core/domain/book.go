package domain

import (
	"fmt"
	"sync"
	"time"
)

// Book aggregates the immutable catalog facts of a title and the set of its
// physical copies. ISBN is the sole equality key. Copy numbers are unique
// within the book, handed out by a per-book monotonic counter guarded by the
// book's own lock, so concurrent copy creation across books never couples.
type Book struct {
	mu sync.RWMutex

	isbn        string
	title       string
	author      string
	subject     Subject
	pages       int
	publisher   string
	publishedAt time.Time

	copies         []*BookCopy
	lastCopyNumber int
}

// NewBook validates every field before the book exists; a failure never
// leaves a half-built entity behind.
func NewBook(isbn, title, author string, pages int, subject Subject, publisher string, publishedAt time.Time) (*Book, error) {
	if err := requireNotBlank(isbn, "ISBN"); err != nil {
		return nil, err
	}
	if err := requireNotBlank(title, "title"); err != nil {
		return nil, err
	}
	if err := requireNotBlank(author, "author"); err != nil {
		return nil, err
	}
	if err := requireNotBlank(publisher, "publisher"); err != nil {
		return nil, err
	}
	if err := requirePositive(pages, "pages"); err != nil {
		return nil, err
	}
	if _, ok := subjects[subject]; !ok {
		return nil, fmt.Errorf("%w: unknown subject %q", ErrValidation, subject)
	}
	if err := requireTime(publishedAt, "published date"); err != nil {
		return nil, err
	}
	return &Book{
		isbn:        isbn,
		title:       title,
		author:      author,
		subject:     subject,
		pages:       pages,
		publisher:   publisher,
		publishedAt: publishedAt,
	}, nil
}

func (b *Book) ISBN() string           { return b.isbn }
func (b *Book) Title() string          { return b.title }
func (b *Book) Author() string         { return b.author }
func (b *Book) Subject() Subject       { return b.subject }
func (b *Book) Pages() int             { return b.pages }
func (b *Book) Publisher() string      { return b.publisher }
func (b *Book) PublishedAt() time.Time { return b.publishedAt }

// AddCopy creates the next-numbered copy of this book at the given location.
func (b *Book) AddCopy(location ShelfLocation) (*BookCopy, error) {
	if _, ok := subjects[location.Section]; !ok {
		return nil, fmt.Errorf("%w: unknown section %q", ErrValidation, location.Section)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastCopyNumber++
	copy := newBookCopy(b.isbn, b.lastCopyNumber, location)
	b.copies = append(b.copies, copy)
	return copy, nil
}

// RemoveCopy withdraws a copy from circulation. A copy that is issued out or
// has queued reservations cannot be removed.
func (b *Book) RemoveCopy(number int) error {
	if err := requirePositive(number, "copy number"); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, c := range b.copies {
		if c.number != number {
			continue
		}
		c.Lock()
		inUse := !c.AvailableToIssue() || c.QueueLength() > 0
		c.Unlock()
		if inUse {
			return fmt.Errorf("%w: copy %s", ErrCopyInUse, c.Key())
		}
		b.copies = append(b.copies[:i], b.copies[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: copy number %d of %s", ErrNotFound, number, b.isbn)
}

// Copy finds a copy by its number.
func (b *Book) Copy(number int) (*BookCopy, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, c := range b.copies {
		if c.number == number {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: copy number %d of %s", ErrNotFound, number, b.isbn)
}

// Copies returns a snapshot of all copies.
func (b *Book) Copies() []*BookCopy {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]*BookCopy(nil), b.copies...)
}

// CanBeIssued reports whether any copy is available right now.
func (b *Book) CanBeIssued() bool {
	return len(b.IssuableCopies()) > 0
}

// IssuableCopies returns the copies currently available to issue.
func (b *Book) IssuableCopies() []*BookCopy {
	var out []*BookCopy
	for _, c := range b.Copies() {
		c.Lock()
		ok := c.AvailableToIssue()
		c.Unlock()
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// CanBeReserved reports whether any copy can take a new reservation.
func (b *Book) CanBeReserved(maxQueue int) bool {
	return len(b.ReservableCopies(maxQueue)) > 0
}

// ReservableCopies returns the copies whose queue can take a new reservation.
func (b *Book) ReservableCopies(maxQueue int) []*BookCopy {
	var out []*BookCopy
	for _, c := range b.Copies() {
		c.Lock()
		ok := c.AvailableToReserve(maxQueue)
		c.Unlock()
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// NextAvailableAt answers when a copy of this book will next be free: now if
// one already is, otherwise the earliest due date across the open issuances.
// The second return is false when the book has no copies at all.
func (b *Book) NextAvailableAt(now time.Time) (time.Time, bool) {
	copies := b.Copies()
	if len(copies) == 0 {
		return time.Time{}, false
	}

	var earliest time.Time
	for _, c := range copies {
		c.Lock()
		active := c.ActiveIssuance()
		if active == nil {
			c.Unlock()
			return now, true
		}
		dueAt := active.DueAt()
		c.Unlock()
		if earliest.IsZero() || dueAt.Before(earliest) {
			earliest = dueAt
		}
	}
	return earliest, true
}
