// Package feedback defines the intake records the feature store is built
// from: customer feedback entries and per-feature usage measurements.
package feedback

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FeedbackType categorizes how a record entered the funnel.
type FeedbackType string

const (
	TypeFeatureRequest FeedbackType = "feature_request"
	TypeEnhancement    FeedbackType = "enhancement"
	TypeBugReport      FeedbackType = "bug_report"
)

// IsValid returns true if the feedback type is a known value.
func (t FeedbackType) IsValid() bool {
	switch t {
	case TypeFeatureRequest, TypeEnhancement, TypeBugReport:
		return true
	default:
		return false
	}
}

// PriorityLevel is the urgency a requester attached to a record.
type PriorityLevel string

const (
	PriorityLow      PriorityLevel = "low"
	PriorityMedium   PriorityLevel = "medium"
	PriorityHigh     PriorityLevel = "high"
	PriorityCritical PriorityLevel = "critical"
)

// IsValid returns true if the priority level is a known value.
func (p PriorityLevel) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// ParsePriorityLevel parses a string into a PriorityLevel.
func ParsePriorityLevel(s string) (PriorityLevel, error) {
	p := PriorityLevel(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority level: %s", s)
	}
	return p, nil
}

// Record is a single piece of customer feedback about a feature.
type Record struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customer_id"`
	Feature       string        `json:"feature"`
	Type          FeedbackType  `json:"type"`
	Priority      PriorityLevel `json:"priority"`
	Source        string        `json:"source,omitempty"`
	Segment       string        `json:"segment,omitempty"`
	RevenueImpact float64       `json:"revenue_impact"`
	Effort        int           `json:"effort"`
	BusinessValue int           `json:"business_value"`
	CreatedAt     time.Time     `json:"created_at"`
}

// NewRecord creates a feedback record with a fresh ID, a timestamp and the
// midpoint estimates used when the requester supplied none.
func NewRecord(customerID, feature string) *Record {
	return &Record{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		Feature:       feature,
		Type:          TypeFeatureRequest,
		Priority:      PriorityMedium,
		Effort:        int(defaultEffort),
		BusinessValue: int(defaultBusinessValue),
		CreatedAt:     time.Now().UTC(),
	}
}

// Validate checks the record for structural integrity.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("feedback record ID is required")
	}
	if strings.TrimSpace(r.Feature) == "" {
		return fmt.Errorf("feedback record feature name is required")
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("invalid feedback type: %s", r.Type)
	}
	if !r.Priority.IsValid() {
		return fmt.Errorf("invalid priority level: %s", r.Priority)
	}
	if r.Effort <= 0 {
		return fmt.Errorf("effort estimate must be positive, got %d", r.Effort)
	}
	if r.BusinessValue < 1 || r.BusinessValue > 10 {
		return fmt.Errorf("business value must be in 1..10, got %d", r.BusinessValue)
	}
	if r.RevenueImpact < 0 {
		return fmt.Errorf("revenue impact cannot be negative")
	}
	return nil
}

// Usage is a per-user measurement of how a shipped or beta feature is used.
type Usage struct {
	Feature         string    `json:"feature"`
	UserID          string    `json:"user_id"`
	UsageCount      int       `json:"usage_count"`
	SessionDuration float64   `json:"session_duration"`
	RecordedAt      time.Time `json:"recorded_at"`
	Segment         string    `json:"segment,omitempty"`
	ConversionImpact float64  `json:"conversion_impact"`
	RetentionImpact  float64  `json:"retention_impact"`
}

// Validate checks the usage measurement for structural integrity.
func (u *Usage) Validate() error {
	if strings.TrimSpace(u.Feature) == "" {
		return fmt.Errorf("usage record feature name is required")
	}
	if u.UserID == "" {
		return fmt.Errorf("usage record user ID is required")
	}
	if u.UsageCount < 0 {
		return fmt.Errorf("usage count cannot be negative")
	}
	return nil
}
