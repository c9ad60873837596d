package config

import (
	"log"
	"time"

	"libralend/internal/adapters/memstore"
	"libralend/internal/core/domain"
	"libralend/internal/pkg/password"

	"github.com/google/uuid"
)

// Seeder fills the in-memory stores at startup: the staff admin account
// always, plus a demo catalog in dev mode.
type Seeder struct {
	cfg     *Config
	users   *memstore.UserStore
	books   *memstore.BookStore
	members *memstore.MemberStore
}

// NewSeeder creates a new seeder instance
func NewSeeder(cfg *Config, users *memstore.UserStore, books *memstore.BookStore, members *memstore.MemberStore) *Seeder {
	return &Seeder{cfg: cfg, users: users, books: books, members: members}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running seeders...")

	if err := s.seedAdminUser(); err != nil {
		return err
	}
	if s.cfg.IsDev() {
		if err := s.seedDemoCatalog(); err != nil {
			log.Printf("⚠️ Demo catalog seeder skipped: %v", err)
		}
	}

	log.Println("✅ Seeding completed")
	return nil
}

// seedAdminUser seeds the default admin user from ADMIN_USERNAME and
// ADMIN_PASSWORD. In production, rotate the password after first login.
func (s *Seeder) seedAdminUser() error {
	if s.users.CountByRole(domain.RoleAdmin) > 0 {
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:        uuid.NewString(),
		Username:  s.cfg.Admin.Username,
		Password:  hashedPassword,
		Role:      domain.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(admin); err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedDemoCatalog seeds a small catalog and two members so a fresh dev
// instance has something to lend.
func (s *Seeder) seedDemoCatalog() error {
	if s.books.Count() > 0 {
		return nil
	}

	type seedBook struct {
		isbn, title, author string
		pages               int
		subject             domain.Subject
		publisher           string
		published           time.Time
	}
	seedBooks := []seedBook{
		{"9780132350884", "Clean Code", "Robert C. Martin", 464, domain.SubjectTechnology, "Prentice Hall", time.Date(2008, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"9780201633610", "Design Patterns", "Erich Gamma", 395, domain.SubjectTechnology, "Addison-Wesley", time.Date(1994, 10, 31, 0, 0, 0, 0, time.UTC)},
		{"9780747532699", "Harry Potter and the Philosopher's Stone", "J.K. Rowling", 223, domain.SubjectFantasy, "Bloomsbury", time.Date(1997, 6, 26, 0, 0, 0, 0, time.UTC)},
	}

	for shelf, sb := range seedBooks {
		book, err := domain.NewBook(sb.isbn, sb.title, sb.author, sb.pages, sb.subject, sb.publisher, sb.published)
		if err != nil {
			return err
		}
		if err := s.books.Add(book); err != nil {
			return err
		}
		for pos := 1; pos <= 2; pos++ {
			location, err := domain.NewShelfLocation(sb.subject, shelf+1, pos)
			if err != nil {
				return err
			}
			if _, err := book.AddCopy(location); err != nil {
				return err
			}
		}
	}

	now := time.Now()
	for _, name := range []string{"Asha Rao", "Ben Carter"} {
		member, err := domain.NewMember(name, now, s.cfg.Lending.MembershipDays)
		if err != nil {
			return err
		}
		if err := s.members.Add(member); err != nil {
			return err
		}
	}

	log.Printf("📚 Demo catalog seeded: %d books, %d members", s.books.Count(), s.members.Count())
	return nil
}
