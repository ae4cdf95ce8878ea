package models

import (
	"time"

	"gensuite-api/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Account Tables
// ============================================================

// Account represents the accounts table (credential store)
type Account struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'user'" json:"role"`
	Approved  bool           `gorm:"default:false" json:"approved"`
	Status    string         `gorm:"size:20;default:'active'" json:"status"`
	PlanCode  string         `gorm:"size:20" json:"plan_code"`
	ExpiresAt *time.Time     `json:"expires_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}

// Snapshot returns the lifecycle view of the account for evaluation
func (a *Account) Snapshot() domain.AccountSnapshot {
	return domain.AccountSnapshot{
		Approved:  a.Approved,
		Status:    a.Status,
		ExpiresAt: a.ExpiresAt,
	}
}

// AccountResponse DTO
type AccountResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Approved  bool       `json:"approved"`
	Status    string     `json:"status"`
	PlanCode  string     `json:"plan_code,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		Approved:  a.Approved,
		Status:    a.Status,
		PlanCode:  a.PlanCode,
		ExpiresAt: a.ExpiresAt,
		CreatedAt: a.CreatedAt,
	}
}

// IPRecord represents the ip_records table (per-account login IP history)
type IPRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"index;not null" json:"account_id"`
	IPAddress string    `gorm:"size:50;not null" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (IPRecord) TableName() string {
	return "ip_records"
}

// ============================================================
// Subscription Tables
// ============================================================

// Plan represents the plans table (pricing display)
type Plan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	PriceCents  int            `gorm:"not null" json:"price_cents"`
	Currency    string         `gorm:"size:3;default:'USD'" json:"currency"`
	Interval    string         `gorm:"size:10;default:'month'" json:"interval"`
	Features    string         `gorm:"type:text" json:"features"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Plan) TableName() string {
	return "plans"
}

// ============================================================
// Security & Generator Tables
// ============================================================

// SecurityEvent represents the security_events table
type SecurityEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"size:36;uniqueIndex;not null" json:"event_id"`
	Event     string    `gorm:"size:100;not null;index" json:"event"`
	Details   string    `gorm:"type:text" json:"details"`
	SourceIP  string    `gorm:"size:50" json:"source_ip"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (SecurityEvent) TableName() string {
	return "security_events"
}

// UserAgentTemplate represents the user_agent_templates table.
// Template takes two fmt verbs: platform token, then major version.
type UserAgentTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Browser   string    `gorm:"size:50;not null" json:"browser"`
	Template  string    `gorm:"size:255;not null" json:"template"`
	Platforms string    `gorm:"type:text;not null" json:"platforms"` // pipe-separated platform tokens
	MinMajor  int       `gorm:"not null" json:"min_major"`
	MaxMajor  int       `gorm:"not null" json:"max_major"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserAgentTemplate) TableName() string {
	return "user_agent_templates"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&IPRecord{},
		&Plan{},
		&SecurityEvent{},
		&UserAgentTemplate{},
	)
}
