// Package mcp exposes the ricemill workspace to MCP clients: ranked
// roadmaps, planning views, stakeholder queries and what-if simulation.
package mcp

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/ricemill/internal/infrastructure/cache"
	"github.com/felixgeelhaar/ricemill/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/ricemill/pkg/application"
	"github.com/felixgeelhaar/ricemill/pkg/domain/insights"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
)

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

type Server struct {
	mcpServer *mcplib.Server
	intake    *application.IntakeService
	prio      *application.PrioritizationService
	query     *application.QueryService
	roadmap   *application.RoadmapService
	audit     *application.AuditService
	snapshot  *cache.Snapshot
	root      string
}

// mcpErr returns a user-friendly error for MCP clients. Internal details are
// omitted.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

func NewServer(root string) (*Server, error) {
	services, err := wiring.BuildAppServices(root)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}

	cfg, err := services.Workspace.Repo.LoadConfig()
	if err != nil {
		return nil, err
	}

	info := mcplib.ServerInfo{
		Name:    "ricemill",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcplib.NewServer(info,
			mcplib.WithTitle("Ricemill MCP Server"),
			mcplib.WithDescription("Ricemill exposes RICE-scored roadmap rankings, planning views, and what-if simulation to MCP clients."),
			mcplib.WithWebsiteURL("https://github.com/felixgeelhaar/ricemill"),
			mcplib.WithBuildInfo(BuildCommit, BuildDate),
			mcplib.WithInstructions("Use tools to read the ranked backlog, ask roadmap questions, and simulate scenarios. Run ricemill_score after changing intake data."),
		),
		intake:   services.Intake,
		prio:     services.Prioritization,
		query:    services.Query,
		roadmap:  services.Roadmap,
		audit:    services.Audit,
		snapshot: cache.NewSnapshot(services.Cache, cfg.Cache.TTL),
		root:     root,
	}

	s.registerTools()
	return s, nil
}

type RankingArgs struct {
	Limit  int    `json:"limit,omitempty" jsonschema:"description=Maximum number of records to return (0 = all)"`
	Filter string `json:"filter,omitempty" jsonschema:"description=CEL expression over record fields, e.g. composite > 20.0 && quadrant == \"Quick Wins\""`
}

type AskArgs struct {
	Question string `json:"question" jsonschema:"description=A natural language question about the roadmap"`
	Filter   string `json:"filter,omitempty" jsonschema:"description=Optional CEL expression narrowing the records the answer is built from"`
}

type SimulateArgs struct {
	Name            string   `json:"name,omitempty" jsonschema:"description=Scenario name for the report"`
	Boost           []string `json:"boost,omitempty" jsonschema:"description=Feature name fragments whose composite score is boosted 1.5x"`
	EffortReduction float64  `json:"effort_reduction,omitempty" jsonschema:"description=Fraction between 0 and 1 by which every effort estimate shrinks"`
	Exclude         []string `json:"exclude,omitempty" jsonschema:"description=Feature name fragments removed from the ranking"`
}

type LifecycleArgs struct {
	Feature string `json:"feature" jsonschema:"description=The feature to transition"`
	Event   string `json:"event" jsonschema:"description=The lifecycle event: score, plan, ship, reject, archive, reopen"`
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("ricemill_score").
		Description("Recompute the full ranking from the intake logs: RICE scores, model re-ranking, quarters and quadrants").
		Handler(s.handleScore)

	s.mcpServer.Tool("ricemill_get_ranking").
		Description("Get the current ranked backlog, optionally limited and filtered with a CEL expression").
		Handler(s.handleGetRanking)

	s.mcpServer.Tool("ricemill_get_quadrants").
		Description("Group the ranked backlog into effort/impact quadrants (Quick Wins, Major Projects, Fill-ins, Questionable)").
		Handler(s.handleGetQuadrants)

	s.mcpServer.Tool("ricemill_get_timeline").
		Description("Get the quarter-by-quarter roadmap derived from composite score quantiles").
		Handler(s.handleGetTimeline)

	s.mcpServer.Tool("ricemill_get_capacity").
		Description("Get per-quarter effort load against the configured team capacity").
		Handler(s.handleGetCapacity)

	s.mcpServer.Tool("ricemill_get_risk").
		Description("Get the backlog sorted by delivery risk, highest first").
		Handler(s.handleGetRisk)

	s.mcpServer.Tool("ricemill_get_roi").
		Description("Get cost, revenue and payback projections for the top-ranked features").
		Handler(s.handleGetROI)

	s.mcpServer.Tool("ricemill_ask").
		Description("Ask a natural language question about priorities, timeline, ROI, capacity or risk").
		Handler(s.handleAsk)

	s.mcpServer.Tool("ricemill_simulate").
		Description("Run a what-if scenario against the current ranking without changing it").
		Handler(s.handleSimulate)

	s.mcpServer.Tool("ricemill_lifecycle").
		Description("Move a feature through the delivery funnel (backlog, scored, planned, shipped, rejected, archived)").
		Handler(s.handleLifecycle)

	s.mcpServer.Tool("ricemill_lifecycle_list").
		Description("List every tracked feature and its lifecycle state").
		Handler(s.handleLifecycleList)

	s.mcpServer.Tool("ricemill_audit_verify").
		Description("Verify the integrity of the workspace audit trail").
		Handler(s.handleAuditVerify)
}

func (s *Server) handleScore(ctx context.Context, args struct{}) (any, error) {
	result, err := s.prio.Score()
	if err != nil {
		return nil, mcpErr("Failed to score. Ensure the workspace has intake data (ricemill add or ricemill import).")
	}
	_ = s.snapshot.Put(ctx, result.Records)

	resp := map[string]any{
		"features":   len(result.Records),
		"model_used": result.ModelUsed,
	}
	if result.TrainStats != nil {
		resp["test_r2"] = result.TrainStats.TestR2
	}
	return resp, nil
}

func (s *Server) handleGetRanking(ctx context.Context, args RankingArgs) (any, error) {
	records, err := s.cachedRanking(ctx)
	if err != nil {
		return nil, mcpErr("No scores available. Run ricemill_score first.")
	}

	records, err = insights.ApplyFilter(records, args.Filter)
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("Invalid filter expression: %s", args.Filter))
	}
	if args.Limit > 0 && args.Limit < len(records) {
		records = records[:args.Limit]
	}
	return records, nil
}

// cachedRanking serves the snapshot cache, falling back to the workspace
// files on a miss.
func (s *Server) cachedRanking(ctx context.Context) ([]*ranking.ScoreRecord, error) {
	if records, err := s.snapshot.Get(ctx); err == nil {
		return records, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		return nil, err
	}

	records, err := s.prio.Ranking(0)
	if err != nil {
		return nil, err
	}
	_ = s.snapshot.Put(ctx, records)
	return records, nil
}

func (s *Server) handleGetQuadrants(ctx context.Context, args struct{}) (any, error) {
	quadrants, err := s.prio.Quadrants()
	if err != nil {
		return nil, mcpErr("No scores available. Run ricemill_score first.")
	}
	return quadrants, nil
}

func (s *Server) handleGetTimeline(ctx context.Context, args struct{}) (any, error) {
	timeline, err := s.prio.Timeline()
	if err != nil {
		return nil, mcpErr("No scores available. Run ricemill_score first.")
	}
	return timeline, nil
}

func (s *Server) handleGetCapacity(ctx context.Context, args struct{}) (any, error) {
	loads, err := s.prio.Capacity()
	if err != nil {
		return nil, mcpErr("No scores available. Run ricemill_score first.")
	}
	return loads, nil
}

func (s *Server) handleGetRisk(ctx context.Context, args struct{}) (any, error) {
	records, err := s.prio.Risk()
	if err != nil {
		return nil, mcpErr("No scores available. Run ricemill_score first.")
	}
	return records, nil
}

func (s *Server) handleGetROI(ctx context.Context, args struct{}) (any, error) {
	projections, err := s.prio.ROI()
	if err != nil {
		return nil, mcpErr("No scores available. Run ricemill_score first.")
	}
	return projections, nil
}

func (s *Server) handleAsk(ctx context.Context, args AskArgs) (any, error) {
	if args.Question == "" {
		return nil, mcpErr("A question is required.")
	}
	result, err := s.query.Ask(args.Question, args.Filter)
	if err != nil {
		return nil, mcpErr("Failed to answer. Check the filter expression and ensure scores exist.")
	}
	return result, nil
}

func (s *Server) handleSimulate(ctx context.Context, args SimulateArgs) (any, error) {
	outcome, err := s.query.Simulate(insights.Scenario{
		Name:            args.Name,
		Boost:           args.Boost,
		EffortReduction: args.EffortReduction,
		Exclude:         args.Exclude,
	})
	if err != nil {
		return nil, mcpErr("Failed to simulate. Run ricemill_score first.")
	}
	return outcome, nil
}

func (s *Server) handleLifecycle(ctx context.Context, args LifecycleArgs) (string, error) {
	if args.Feature == "" || args.Event == "" {
		return "", mcpErr("Both feature and event are required.")
	}
	next, err := s.roadmap.Transition(args.Feature, args.Event)
	if err != nil {
		return "", mcpErr(fmt.Sprintf("Cannot apply %q to %q: the transition is not allowed from the current state.", args.Event, args.Feature))
	}
	return fmt.Sprintf("%s is now %s", args.Feature, next), nil
}

func (s *Server) handleLifecycleList(ctx context.Context, args struct{}) (any, error) {
	list, err := s.roadmap.List()
	if err != nil {
		return nil, mcpErr("Failed to load the backlog.")
	}
	return list, nil
}

func (s *Server) handleAuditVerify(ctx context.Context, args struct{}) (any, error) {
	violations, err := s.audit.VerifyIntegrity()
	if err != nil {
		return nil, mcpErr("Failed to load the audit trail.")
	}
	if len(violations) == 0 {
		return "Audit trail verified. No violations found.", nil
	}
	return violations, nil
}

func (s *Server) Start() error {
	return s.ServeStdio(context.Background())
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcplib.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcplib.ServeHTTP(ctx, s.mcpServer, addr, mcplib.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcplib.ServeWebSocket(ctx, s.mcpServer, addr)
}
