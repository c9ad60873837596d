package services

import (
	"log"
	"time"

	"libralend/internal/adapters/memstore"
	"libralend/internal/config"

	"github.com/robfig/cron/v3"
)

// OverdueService reports open loans past their due date. It runs a daily
// scheduled sweep and can also be queried on demand.
type OverdueService struct {
	history  *memstore.HistoryStore
	cfg      *config.Config
	now      func() time.Time
	schedule *cron.Cron
}

// NewOverdueService creates a new overdue service
func NewOverdueService(history *memstore.HistoryStore, cfg *config.Config) *OverdueService {
	return &OverdueService{
		history: history,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Start schedules the daily overdue sweep (every morning at 08:30).
func (s *OverdueService) Start() error {
	s.schedule = cron.New()
	if _, err := s.schedule.AddFunc("30 8 * * *", s.reportOverdue); err != nil {
		return err
	}
	s.schedule.Start()

	log.Println("🚀 OverdueService started (daily sweep at 08:30)")
	return nil
}

// Stop halts the scheduler. Sweeps already running finish on their own.
func (s *OverdueService) Stop() {
	if s.schedule != nil {
		s.schedule.Stop()
	}
	log.Println("🛑 OverdueService stopped")
}

// OverdueReport lists one entry per open overdue loan.
type OverdueReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Entries     []OverdueEntry `json:"entries"`
}

// OverdueEntry describes a single overdue loan and the fine it would carry if
// the copy came back right now.
type OverdueEntry struct {
	IssuanceID    string    `json:"issuance_id"`
	Copy          string    `json:"copy"`
	MemberID      string    `json:"member_id"`
	DueAt         time.Time `json:"due_at"`
	DaysLate      int       `json:"days_late"`
	ProjectedFine int       `json:"projected_fine"`
}

// Report builds the overdue report for the current instant.
func (s *OverdueService) Report() *OverdueReport {
	now := s.now()
	overdue := s.history.OverdueIssuances(now)

	report := &OverdueReport{
		GeneratedAt: now,
		Entries:     make([]OverdueEntry, 0, len(overdue)),
	}
	for _, record := range overdue {
		daysLate := int(now.Sub(record.DueAt) / (24 * time.Hour))
		report.Entries = append(report.Entries, OverdueEntry{
			IssuanceID:    record.ID,
			Copy:          record.Copy.String(),
			MemberID:      record.MemberID,
			DueAt:         record.DueAt,
			DaysLate:      daysLate,
			ProjectedFine: daysLate * s.cfg.Lending.FinePerDay,
		})
	}
	return report
}

func (s *OverdueService) reportOverdue() {
	report := s.Report()
	if len(report.Entries) == 0 {
		log.Println("📅 Overdue sweep: no overdue loans")
		return
	}

	for _, entry := range report.Entries {
		log.Printf("⏰ Overdue: copy %s held by %s, due %s (%d days late, projected fine %d)",
			entry.Copy, entry.MemberID, entry.DueAt.Format("2006-01-02"), entry.DaysLate, entry.ProjectedFine)
	}
	log.Printf("📅 Overdue sweep: %d overdue loans", len(report.Entries))
}
