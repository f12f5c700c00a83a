package application

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
)

// seedFeatures is the demo catalog. Names deliberately hit the team keyword
// table so seeded workspaces show a realistic team split.
var seedFeatures = []struct {
	name     string
	requests int
	users    int
	effort   int
	value    int
	revenue  float64
	priority feedback.PriorityLevel
}{
	{"Dark mode support", 28, 340, 5, 7, 8000, feedback.PriorityHigh},
	{"Advanced search filters", 22, 210, 8, 8, 15000, feedback.PriorityHigh},
	{"Mobile app redesign", 18, 480, 21, 9, 30000, feedback.PriorityCritical},
	{"API rate limit increase", 15, 95, 3, 6, 12000, feedback.PriorityMedium},
	{"Export to PDF", 12, 150, 5, 5, 5000, feedback.PriorityLow},
	{"Single sign-on integration", 11, 60, 13, 9, 45000, feedback.PriorityCritical},
	{"Custom analytics dashboard", 10, 85, 13, 8, 25000, feedback.PriorityHigh},
	{"Real-time collaboration", 9, 120, 21, 9, 35000, feedback.PriorityHigh},
	{"Offline mode for mobile", 8, 200, 13, 7, 10000, feedback.PriorityMedium},
	{"Bulk import tooling", 7, 40, 8, 6, 9000, feedback.PriorityMedium},
	{"Performance improvements for reports", 6, 310, 8, 7, 14000, feedback.PriorityHigh},
	{"Keyboard shortcuts", 5, 75, 2, 4, 2000, feedback.PriorityLow},
}

// SeedService populates an empty workspace with a deterministic demo dataset
// big enough to exercise the full pipeline, model training included.
type SeedService struct {
	intake *IntakeService
	audit  domain.AuditLogger
}

func NewSeedService(intake *IntakeService, audit domain.AuditLogger) *SeedService {
	return &SeedService{intake: intake, audit: audit}
}

// Seed writes the demo feedback and usage records. The same seed always
// produces the same dataset so scoring runs are reproducible.
func (s *SeedService) Seed() (feedbackCount, usageCount int, err error) {
	rng := rand.New(rand.NewSource(7))
	base := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	var records []*feedback.Record
	var usage []*feedback.Usage

	for fi, f := range seedFeatures {
		for i := 0; i < f.requests; i++ {
			r := feedback.NewRecord(fmt.Sprintf("CUST_%04d", rng.Intn(400)+1), f.name)
			r.Priority = f.priority
			if i > 0 && rng.Float64() < 0.4 {
				// Not every requester agrees on urgency.
				r.Priority = feedback.PriorityMedium
			}
			r.Effort = f.effort
			r.BusinessValue = f.value
			r.RevenueImpact = f.revenue * (0.7 + rng.Float64()*0.6)
			r.Source = "seed"
			r.Segment = []string{"enterprise", "mid-market", "smb"}[rng.Intn(3)]
			r.CreatedAt = base.AddDate(0, 0, fi*3+i/4)
			records = append(records, r)
		}

		for i := 0; i < f.users; i++ {
			usage = append(usage, &feedback.Usage{
				Feature:          f.name,
				UserID:           fmt.Sprintf("USER_%05d", rng.Intn(5000)+1),
				UsageCount:       rng.Intn(40) + 1,
				SessionDuration:  5 + rng.Float64()*55,
				RecordedAt:       base.AddDate(0, 0, rng.Intn(90)),
				ConversionImpact: rng.Float64() * 0.12,
				RetentionImpact:  rng.Float64() * 0.2,
			})
		}
	}

	if _, err := s.intake.ImportRecords("seed", records); err != nil {
		return 0, 0, err
	}
	if err := s.intake.repo.AppendUsage(usage...); err != nil {
		return 0, 0, err
	}
	err = s.audit.Log(domain.ActionUsageAdded, "seed", map[string]interface{}{
		"count": len(usage),
	})
	return len(records), len(usage), err
}
