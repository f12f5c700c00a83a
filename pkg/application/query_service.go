package application

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/felixgeelhaar/ricemill/pkg/domain/insights"
	"github.com/felixgeelhaar/ricemill/pkg/domain/roi"
	"github.com/shopspring/decimal"
)

// QueryService answers natural-language questions about the current ranking
// and runs what-if scenarios against it.
type QueryService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
	now   func() time.Time
}

func NewQueryService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *QueryService {
	return &QueryService{repo: repo, audit: audit, now: time.Now}
}

// Ask classifies the query, renders an answer from the current snapshot, and
// appends the exchange to the query log. An optional CEL filter expression
// narrows the records the answer is built from.
func (s *QueryService) Ask(query, filterExpr string) (insights.Result, error) {
	ctx, err := s.buildContext()
	if err != nil {
		return insights.Result{}, err
	}

	ctx.Records, err = insights.ApplyFilter(ctx.Records, filterExpr)
	if err != nil {
		return insights.Result{}, err
	}

	result := insights.Answer(query, ctx)

	entry := domain.QueryLogEntry{
		Timestamp: s.now(),
		Query:     query,
		Kind:      string(result.Kind),
		Answer:    result.Answer,
	}
	if err := s.repo.AppendQuery(entry); err != nil {
		return insights.Result{}, fmt.Errorf("failed to log query: %w", err)
	}
	_ = s.audit.Log(domain.ActionQueryAnswered, "cli", map[string]interface{}{
		"query": query,
		"kind":  string(result.Kind),
	})
	return result, nil
}

// History returns the query log, newest last.
func (s *QueryService) History() ([]domain.QueryLogEntry, error) {
	return s.repo.LoadQueries()
}

// Simulate runs a what-if scenario against the persisted snapshot. The
// baseline on disk is never modified.
func (s *QueryService) Simulate(scenario insights.Scenario) (insights.Outcome, error) {
	records, err := s.repo.LoadScores()
	if err != nil {
		return insights.Outcome{}, fmt.Errorf("failed to load scores: %w", err)
	}
	if len(records) == 0 {
		return insights.Outcome{}, ErrNoScores
	}
	return insights.Simulate(records, scenario), nil
}

func (s *QueryService) buildContext() (insights.Context, error) {
	records, err := s.repo.LoadScores()
	if err != nil {
		return insights.Context{}, fmt.Errorf("failed to load scores: %w", err)
	}

	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return insights.Context{}, fmt.Errorf("failed to load config: %w", err)
	}

	ctx := insights.Context{Records: records, Capacity: cfg.QuarterCapacity}
	if len(records) == 0 {
		return ctx, nil
	}

	feedbackRecords, err := s.repo.LoadFeedback()
	if err != nil {
		return insights.Context{}, fmt.Errorf("failed to load feedback: %w", err)
	}
	usage, err := s.repo.LoadUsage()
	if err != nil {
		return insights.Context{}, fmt.Errorf("failed to load usage: %w", err)
	}
	summaries := feedback.Summarize(feedbackRecords, usage)
	ctx.Projections = roi.Project(records, summaries, decimal.NewFromFloat(cfg.CostPerPoint))
	return ctx, nil
}
