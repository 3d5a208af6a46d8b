package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TermCategory is the fixed category set for glossary terms. "All" exists
// only as a client-side filter value and is never persisted.
type TermCategory string

const (
	CategoryAll     TermCategory = "All"
	CategoryAcronym TermCategory = "Acronym"
	CategoryStatus  TermCategory = "Status/Tiers"
	CategoryQueue   TermCategory = "Queues"
	CategoryGeneral TermCategory = "General"
	CategorySlang   TermCategory = "Slang"
)

// Categories lists every persistable category.
var Categories = []TermCategory{
	CategoryAcronym,
	CategoryStatus,
	CategoryQueue,
	CategoryGeneral,
	CategorySlang,
}

// TermStatus controls visibility. Only approved terms are shown in the public
// glossary; pending terms are visible to moderators only.
type TermStatus string

const (
	StatusPending  TermStatus = "pending"
	StatusApproved TermStatus = "approved"
	StatusRejected TermStatus = "rejected"
)

// Term represents a single glossary entry
type Term struct {
	ID         string       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Term       string       `json:"term" gorm:"type:varchar(100);index;not null"`
	Definition string       `json:"definition" gorm:"type:text;not null"`
	Example    string       `json:"example,omitempty" gorm:"type:text"`
	Category   TermCategory `json:"category" gorm:"type:varchar(20);index;not null"`
	Tags       StringList   `json:"tags,omitempty" gorm:"type:text"`
	Status     TermStatus   `json:"status,omitempty" gorm:"type:varchar(10);index;default:'pending'"`
	CreatedAt  time.Time    `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// Validate checks the fields a submission must carry
func (t *Term) Validate() error {
	if t.Term == "" {
		return fmt.Errorf("term name is required")
	}
	if t.Definition == "" {
		return fmt.Errorf("definition is required")
	}
	if !ValidCategory(t.Category) {
		return fmt.Errorf("invalid category: %q", t.Category)
	}
	return nil
}

// ValidCategory reports whether the category is a persistable one
func ValidCategory(c TermCategory) bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// ValidStatus reports whether the status is a known lifecycle state
func ValidStatus(s TermStatus) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// BeforeCreate backfills defaults when rows are inserted through gorm
func (t *Term) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = StatusPending
	}
	return nil
}
