package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverdueReport(t *testing.T) {
	f := newLendingFixture(t)
	keys := f.addBookWithCopies(t, "111", 2)
	alice := f.addMember(t, "Alice")
	bob := f.addMember(t, "Bob")

	_, err := f.lending.IssueCopy(keys[0], alice)
	require.NoError(t, err)
	_, err = f.lending.IssueCopy(keys[1], bob)
	require.NoError(t, err)

	// Bob returns on time; Alice's copy stays out past the due date.
	f.clock = onDay(8)
	_, err = f.lending.ReturnCopy(keys[1], bob)
	require.NoError(t, err)

	svc := NewOverdueService(f.history, testConfig())
	svc.now = func() time.Time { return onDay(14) }

	report := svc.Report()
	assert.Equal(t, onDay(14), report.GeneratedAt)
	require.Len(t, report.Entries, 1)

	entry := report.Entries[0]
	assert.Equal(t, alice, entry.MemberID)
	assert.Equal(t, keys[0].String(), entry.Copy)
	assert.Equal(t, onDay(10), entry.DueAt)
	assert.Equal(t, 4, entry.DaysLate)
	assert.Equal(t, 20, entry.ProjectedFine)
}

func TestOverdueReportEmpty(t *testing.T) {
	f := newLendingFixture(t)

	svc := NewOverdueService(f.history, testConfig())
	svc.now = func() time.Time { return day0 }

	report := svc.Report()
	assert.Empty(t, report.Entries)
}
