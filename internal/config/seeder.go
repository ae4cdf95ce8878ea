package config

import (
	"log"

	"gensuite-api/internal/adapters/persistence/models"
	"gensuite-api/internal/core/domain"
	"gensuite-api/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedPlans(); err != nil {
		log.Printf("⚠️ Plan seeder skipped: %v", err)
	}
	if err := s.seedUserAgentTemplates(); err != nil {
		log.Printf("⚠️ User-agent template seeder skipped: %v", err)
	}
	if err := s.seedAdminAccount(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedPlans seeds the pricing plans displayed on the subscription page
func (s *Seeder) seedPlans() error {
	var count int64
	s.db.Model(&models.Plan{}).Count(&count)
	if count > 0 {
		return nil // Plans already seeded
	}

	plans := []models.Plan{
		{
			Code:        "free",
			Name:        "Free",
			Description: "Try the generator tools with daily limits",
			PriceCents:  0,
			Interval:    "month",
			Features:    "50 generations/day|User-agent generator|Community support",
			SortOrder:   1,
		},
		{
			Code:        "pro",
			Name:        "Pro",
			Description: "Full access for individual developers",
			PriceCents:  900,
			Interval:    "month",
			Features:    "Unlimited generations|All generator tools|Address lookup|Email support",
			SortOrder:   2,
		},
		{
			Code:        "team",
			Name:        "Team",
			Description: "Shared workspace and priority support",
			PriceCents:  2900,
			Interval:    "month",
			Features:    "Everything in Pro|5 seats|Priority support|Usage reports",
			SortOrder:   3,
		},
	}

	for i := range plans {
		if err := s.db.Create(&plans[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d plans", len(plans))
	return nil
}

// seedUserAgentTemplates seeds the templates the user-agent generator draws from
func (s *Seeder) seedUserAgentTemplates() error {
	var count int64
	s.db.Model(&models.UserAgentTemplate{}).Count(&count)
	if count > 0 {
		return nil
	}

	desktops := "Windows NT 10.0; Win64; x64|Macintosh; Intel Mac OS X 10_15_7|X11; Linux x86_64"
	templates := []models.UserAgentTemplate{
		{
			Browser:   "Chrome",
			Template:  "Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.0.0 Safari/537.36",
			Platforms: desktops,
			MinMajor:  110,
			MaxMajor:  126,
			IsActive:  true,
		},
		{
			Browser:   "Firefox",
			Template:  "Mozilla/5.0 (%s; rv:%d.0) Gecko/20100101 Firefox/%d.0",
			Platforms: desktops,
			MinMajor:  110,
			MaxMajor:  127,
			IsActive:  true,
		},
		{
			Browser:   "Safari",
			Template:  "Mozilla/5.0 (%s) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/%d.0 Safari/605.1.15",
			Platforms: "Macintosh; Intel Mac OS X 10_15_7",
			MinMajor:  15,
			MaxMajor:  17,
			IsActive:  true,
		},
		{
			Browser:   "Edge",
			Template:  "Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.0.0 Safari/537.36 Edg/%d.0.0.0",
			Platforms: "Windows NT 10.0; Win64; x64",
			MinMajor:  110,
			MaxMajor:  125,
			IsActive:  true,
		},
	}

	for i := range templates {
		if err := s.db.Create(&templates[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d user-agent templates", len(templates))
	return nil
}

// seedAdminAccount seeds the configured back-office account.
// Dev only: in production admins are provisioned through a secure process.
func (s *Seeder) seedAdminAccount() error {
	if s.cfg.IsProd() {
		return nil
	}

	var count int64
	s.db.Model(&models.Account{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashed, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.Account{
		Username: s.cfg.Admin.Username,
		Email:    s.cfg.Admin.Username + "@gensuite.local",
		Password: hashed,
		Role:     "admin",
		Approved: true,
		Status:   domain.StatusActive,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin account created: %s", admin.Username)
	return nil
}
