package memstore

import (
	"testing"

	"libralend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedBook(t *testing.T, store *BookStore, isbn string) *domain.Book {
	t.Helper()
	book, err := domain.NewBook(isbn, "Title "+isbn, "Author", 100, domain.SubjectHistory, "Pub", day0.AddDate(-5, 0, 0))
	require.NoError(t, err)
	require.NoError(t, store.Add(book))
	return book
}

func TestBookStoreAddAndGet(t *testing.T) {
	store := NewBookStore()
	storedBook(t, store, "111")

	book, err := store.GetByISBN("111")
	require.NoError(t, err)
	assert.Equal(t, "111", book.ISBN())
	assert.Equal(t, 1, store.Count())

	_, err = store.GetByISBN("999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookStoreRejectsDuplicateISBN(t *testing.T) {
	store := NewBookStore()
	storedBook(t, store, "111")

	duplicate, err := domain.NewBook("111", "Other Title", "Other Author", 50, domain.SubjectPoetry, "Pub", day0.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.ErrorIs(t, store.Add(duplicate), domain.ErrDuplicate)
	assert.Equal(t, 1, store.Count())
}

func TestBookStoreFindCopy(t *testing.T) {
	store := NewBookStore()
	book := storedBook(t, store, "111")
	location, err := domain.NewShelfLocation(domain.SubjectHistory, 1, 1)
	require.NoError(t, err)
	_, err = book.AddCopy(location)
	require.NoError(t, err)

	bookCopy, err := store.FindCopy(domain.CopyKey{ISBN: "111", Number: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, bookCopy.Number())

	_, err = store.FindCopy(domain.CopyKey{ISBN: "111", Number: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.FindCopy(domain.CopyKey{ISBN: "999", Number: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemberStoreLifecycle(t *testing.T) {
	store := NewMemberStore()
	member, err := domain.NewMember("Asha Rao", day0, 365)
	require.NoError(t, err)
	require.NoError(t, store.Add(member))

	got, err := store.GetByID(member.ID())
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", got.Name())

	require.NoError(t, store.Remove(member.ID()))
	_, err = store.GetByID(member.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Remove(member.ID()), domain.ErrNotFound)
}
