package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var published = time.Date(1997, 6, 26, 0, 0, 0, 0, time.UTC)

func testBook(t *testing.T) *Book {
	t.Helper()
	book, err := NewBook("9780747532699", "Harry Potter and the Philosopher's Stone", "J.K. Rowling", 223, SubjectFantasy, "Bloomsbury", published)
	require.NoError(t, err)
	return book
}

func TestNewBookValidation(t *testing.T) {
	cases := []struct {
		name string
		fn   func() (*Book, error)
	}{
		{"blank isbn", func() (*Book, error) {
			return NewBook("", "Title", "Author", 100, SubjectFantasy, "Pub", published)
		}},
		{"blank title", func() (*Book, error) {
			return NewBook("111", "  ", "Author", 100, SubjectFantasy, "Pub", published)
		}},
		{"blank author", func() (*Book, error) {
			return NewBook("111", "Title", "", 100, SubjectFantasy, "Pub", published)
		}},
		{"zero pages", func() (*Book, error) {
			return NewBook("111", "Title", "Author", 0, SubjectFantasy, "Pub", published)
		}},
		{"unknown subject", func() (*Book, error) {
			return NewBook("111", "Title", "Author", 100, Subject("COOKING"), "Pub", published)
		}},
		{"blank publisher", func() (*Book, error) {
			return NewBook("111", "Title", "Author", 100, SubjectFantasy, "", published)
		}},
		{"zero published date", func() (*Book, error) {
			return NewBook("111", "Title", "Author", 100, SubjectFantasy, "Pub", time.Time{})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fn()
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestBookCopyNumbersAreSequential(t *testing.T) {
	book := testBook(t)
	location := testLocation(t)

	first, err := book.AddCopy(location)
	require.NoError(t, err)
	second, err := book.AddCopy(location)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Number())
	assert.Equal(t, 2, second.Number())
	assert.Equal(t, "9780747532699#2", second.Key().String())

	// Numbers are never reused after a removal.
	require.NoError(t, book.RemoveCopy(2))
	third, err := book.AddCopy(location)
	require.NoError(t, err)
	assert.Equal(t, 3, third.Number())
}

func TestBookRemoveCopy(t *testing.T) {
	book := testBook(t)
	bookCopy, err := book.AddCopy(testLocation(t))
	require.NoError(t, err)

	assert.ErrorIs(t, book.RemoveCopy(99), ErrNotFound)

	bookCopy.Lock()
	_, err = bookCopy.Issue("m1", day0, 10)
	bookCopy.Unlock()
	require.NoError(t, err)

	assert.ErrorIs(t, book.RemoveCopy(1), ErrCopyInUse)

	bookCopy.Lock()
	_, err = bookCopy.Return(onDay(1), 5)
	bookCopy.Unlock()
	require.NoError(t, err)

	require.NoError(t, book.RemoveCopy(1))
	assert.Empty(t, book.Copies())
}

func TestBookAggregateAvailability(t *testing.T) {
	book := testBook(t)
	first, err := book.AddCopy(testLocation(t))
	require.NoError(t, err)
	_, err = book.AddCopy(testLocation(t))
	require.NoError(t, err)

	assert.True(t, book.CanBeIssued())
	assert.False(t, book.CanBeReserved(3), "an available copy cannot be reserved")

	first.Lock()
	_, err = first.Issue("m1", day0, 10)
	first.Unlock()
	require.NoError(t, err)

	assert.Len(t, book.IssuableCopies(), 1)
	assert.Len(t, book.ReservableCopies(3), 1)
	assert.True(t, book.CanBeReserved(3))
}

func TestBookNextAvailableAt(t *testing.T) {
	book := testBook(t)

	_, ok := book.NextAvailableAt(day0)
	assert.False(t, ok, "a book with no copies is never available")

	first, err := book.AddCopy(testLocation(t))
	require.NoError(t, err)
	second, err := book.AddCopy(testLocation(t))
	require.NoError(t, err)

	at, ok := book.NextAvailableAt(day0)
	require.True(t, ok)
	assert.Equal(t, day0, at, "a free copy means available now")

	first.Lock()
	_, err = first.Issue("m1", day0, 10)
	first.Unlock()
	require.NoError(t, err)
	second.Lock()
	_, err = second.Issue("m2", onDay(3), 10)
	second.Unlock()
	require.NoError(t, err)

	at, ok = book.NextAvailableAt(onDay(4))
	require.True(t, ok)
	assert.Equal(t, onDay(10), at, "earliest due date across open issuances")
}
