package storage

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain"
	"github.com/felixgeelhaar/ricemill/pkg/domain/events"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ml"
	"github.com/felixgeelhaar/ricemill/pkg/domain/plugin"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
	"github.com/felixgeelhaar/ricemill/pkg/domain/scoring"
)

func newTestRepo(t *testing.T) *FilesystemRepository {
	t.Helper()
	repo := NewFilesystemRepository(t.TempDir())
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return repo
}

func TestInitialize(t *testing.T) {
	root := t.TempDir()
	repo := NewFilesystemRepository(root)

	if repo.IsInitialized() {
		t.Error("IsInitialized() = true before Initialize")
	}
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !repo.IsInitialized() {
		t.Error("IsInitialized() = false after Initialize")
	}

	info, err := os.Stat(filepath.Join(root, RicemillDir))
	if err != nil {
		t.Fatalf("stat workspace dir: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("workspace dir mode = %o, want 0700", info.Mode().Perm())
	}
}

func TestResolvePath(t *testing.T) {
	repo := NewFilesystemRepository(t.TempDir())

	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"plain file", "scores.json", false},
		{"empty", "", true},
		{"parent traversal", "../escape.json", true},
		{"deep traversal", "../../etc/passwd", true},
		{"nested subdir", "sub/scores.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ResolvePath(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ResolvePath(%q) = %q, want error", tt.filename, got)
				}
				return
			}
			if err != nil {
				t.Errorf("ResolvePath(%q) error = %v", tt.filename, err)
			}
			if !strings.HasSuffix(got, filepath.Join(RicemillDir, tt.filename)) {
				t.Errorf("ResolvePath(%q) = %q", tt.filename, got)
			}
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	// Missing file falls back to defaults.
	cfg, err := repo.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.QuarterCapacity != ranking.DefaultQuarterCapacity {
		t.Errorf("default QuarterCapacity = %v", cfg.QuarterCapacity)
	}

	cfg.QuarterCapacity = 150
	cfg.Weights = ranking.Weights{RICE: 0.6, ML: 0.4}
	if err := repo.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := repo.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.QuarterCapacity != 150 || loaded.Weights.ML != 0.4 {
		t.Errorf("LoadConfig() = %+v", loaded)
	}
}

func TestFeedbackLog(t *testing.T) {
	repo := newTestRepo(t)

	rec := feedback.NewRecord("cust-1", "dark mode")
	rec2 := feedback.NewRecord("cust-2", "sso")
	rec2.Priority = feedback.PriorityCritical

	if err := repo.AppendFeedback(rec); err != nil {
		t.Fatalf("AppendFeedback() error = %v", err)
	}
	if err := repo.AppendFeedback(rec2); err != nil {
		t.Fatalf("AppendFeedback() error = %v", err)
	}

	records, err := repo.LoadFeedback()
	if err != nil {
		t.Fatalf("LoadFeedback() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Feature != "dark mode" || records[1].Priority != feedback.PriorityCritical {
		t.Errorf("records = %+v", records)
	}
}

func TestAppendFeedbackRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	rec := feedback.NewRecord("cust-1", "dark mode")
	rec.BusinessValue = 99
	if err := repo.AppendFeedback(rec); err == nil {
		t.Error("AppendFeedback() expected validation error")
	}

	// Nothing should have been written.
	records, err := repo.LoadFeedback()
	if err != nil {
		t.Fatalf("LoadFeedback() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestUsageLog(t *testing.T) {
	repo := newTestRepo(t)

	u := &feedback.Usage{
		Feature:    "dark mode",
		UserID:     "user-1",
		UsageCount: 4,
		RecordedAt: time.Now().UTC(),
	}
	if err := repo.AppendUsage(u); err != nil {
		t.Fatalf("AppendUsage() error = %v", err)
	}

	records, err := repo.LoadUsage()
	if err != nil {
		t.Fatalf("LoadUsage() error = %v", err)
	}
	if len(records) != 1 || records[0].UserID != "user-1" {
		t.Errorf("records = %+v", records)
	}
}

func TestLoadFeedbackEmptyWorkspace(t *testing.T) {
	repo := newTestRepo(t)

	records, err := repo.LoadFeedback()
	if err != nil {
		t.Fatalf("LoadFeedback() error = %v", err)
	}
	if records != nil {
		t.Errorf("LoadFeedback() = %v, want nil", records)
	}
}

func TestScoresRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	// No snapshot yet.
	records, err := repo.LoadScores()
	if err != nil {
		t.Fatalf("LoadScores() error = %v", err)
	}
	if records != nil {
		t.Errorf("LoadScores() = %v before save, want nil", records)
	}

	in := []*ranking.ScoreRecord{
		{Feature: "sso", Rank: 1, Composite: 42.5, Quadrant: scoring.QuadrantQuickWins, Quarter: "Q4 2026"},
	}
	if err := repo.SaveScores(in); err != nil {
		t.Fatalf("SaveScores() error = %v", err)
	}

	records, err = repo.LoadScores()
	if err != nil {
		t.Fatalf("LoadScores() error = %v", err)
	}
	if len(records) != 1 || records[0].Quadrant != scoring.QuadrantQuickWins {
		t.Errorf("LoadScores() = %+v", records)
	}

	path, _ := repo.ResolvePath(ScoresFile)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat scores file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("scores file mode = %o, want 0600", info.Mode().Perm())
	}
}

func TestModelRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	// No artifact yet.
	model, err := repo.LoadModel()
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if model != nil {
		t.Errorf("LoadModel() = %v before save, want nil", model)
	}

	d := &ml.Dataset{}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 12; i++ {
		row := make([]float64, len(ml.FeatureNames))
		for j := range row {
			row[j] = rng.Float64()*10 + 1
		}
		d.X = append(d.X, row)
		d.Y = append(d.Y, row[0]*row[1]*row[2]/row[3])
	}
	trained, err := ml.Train(d, ml.DefaultConfig())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	if err := repo.SaveModel(trained); err != nil {
		t.Fatalf("SaveModel() error = %v", err)
	}

	model, err = repo.LoadModel()
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if model == nil || len(model.Trees) != len(trained.Trees) {
		t.Fatalf("LoadModel() lost trees")
	}

	row := d.X[0]
	want, _ := trained.Predict(row)
	got, err := model.Predict(row)
	if err != nil {
		t.Fatalf("Predict() on loaded model error = %v", err)
	}
	if got != want {
		t.Errorf("loaded model Predict() = %v, want %v", got, want)
	}
}

func TestBacklogRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	backlog, err := repo.LoadBacklog()
	if err != nil {
		t.Fatalf("LoadBacklog() error = %v", err)
	}
	if len(backlog) != 0 {
		t.Errorf("LoadBacklog() = %v before save", backlog)
	}

	if err := repo.SaveBacklog(map[string]string{"sso": "planned"}); err != nil {
		t.Fatalf("SaveBacklog() error = %v", err)
	}

	backlog, err = repo.LoadBacklog()
	if err != nil {
		t.Fatalf("LoadBacklog() error = %v", err)
	}
	if backlog["sso"] != "planned" {
		t.Errorf("LoadBacklog() = %v", backlog)
	}
}

func TestEventLog(t *testing.T) {
	repo := newTestRepo(t)

	event := domain.Event{
		ID:        "evt-1",
		Timestamp: time.Now().UTC(),
		Action:    domain.ActionScoresComputed,
		Actor:     "cli",
		Metadata:  map[string]interface{}{"features": 3.0},
	}
	event.Hash = event.CalculateHash()

	if err := repo.RecordEvent(event); err != nil {
		t.Fatalf("RecordEvent() error = %v", err)
	}

	loaded, err := repo.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents() error = %v", err)
	}
	if len(loaded) != 1 || loaded[0].Action != domain.ActionScoresComputed {
		t.Fatalf("LoadEvents() = %+v", loaded)
	}
	if loaded[0].Hash != loaded[0].CalculateHash() {
		t.Error("event hash does not verify after round trip")
	}
}

func TestQueryLog(t *testing.T) {
	repo := newTestRepo(t)

	entry := domain.QueryLogEntry{
		Timestamp: time.Now().UTC(),
		Query:     "top priorities?",
		Kind:      "priority",
		Answer:    "1. sso",
	}
	if err := repo.AppendQuery(entry); err != nil {
		t.Fatalf("AppendQuery() error = %v", err)
	}

	loaded, err := repo.LoadQueries()
	if err != nil {
		t.Fatalf("LoadQueries() error = %v", err)
	}
	if len(loaded) != 1 || loaded[0].Kind != "priority" {
		t.Errorf("LoadQueries() = %+v", loaded)
	}
}

func TestWebhookConfigRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	cfg, err := repo.LoadWebhookConfig()
	if err != nil {
		t.Fatalf("LoadWebhookConfig() error = %v", err)
	}
	if len(cfg.Webhooks) != 0 {
		t.Errorf("LoadWebhookConfig() = %+v before save", cfg)
	}

	cfg.Webhooks = append(cfg.Webhooks, events.WebhookEndpoint{
		Name:    "slack",
		URL:     "https://hooks.example.com/x",
		Secret:  "shh",
		Enabled: true,
	})
	if err := repo.SaveWebhookConfig(cfg); err != nil {
		t.Fatalf("SaveWebhookConfig() error = %v", err)
	}

	loaded, err := repo.LoadWebhookConfig()
	if err != nil {
		t.Fatalf("LoadWebhookConfig() error = %v", err)
	}
	if len(loaded.Webhooks) != 1 || loaded.Webhooks[0].Name != "slack" {
		t.Errorf("LoadWebhookConfig() = %+v", loaded)
	}
}

func TestDeadLetterLog(t *testing.T) {
	repo := newTestRepo(t)

	letter := events.DeadLetter{
		Timestamp:   time.Now().UTC(),
		WebhookName: "slack",
		EventType:   events.EventRankingChanged,
		Error:       "connection refused",
		Attempts:    3,
	}
	if err := repo.AppendDeadLetter(letter); err != nil {
		t.Fatalf("AppendDeadLetter() error = %v", err)
	}

	letters, err := repo.LoadDeadLetters()
	if err != nil {
		t.Fatalf("LoadDeadLetters() error = %v", err)
	}
	if len(letters) != 1 || letters[0].Attempts != 3 {
		t.Errorf("LoadDeadLetters() = %+v", letters)
	}
}

func TestImporterConfigsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	cfg, err := repo.LoadImporterConfigs()
	if err != nil {
		t.Fatalf("LoadImporterConfigs() error = %v", err)
	}

	cfg.Set("intercom", plugin.ImporterConfig{
		Binary: "/usr/local/bin/ricemill-plugin-intercom",
		Config: map[string]string{"token": "abc"},
	})
	if err := repo.SaveImporterConfigs(cfg); err != nil {
		t.Fatalf("SaveImporterConfigs() error = %v", err)
	}

	loaded, err := repo.LoadImporterConfigs()
	if err != nil {
		t.Fatalf("LoadImporterConfigs() error = %v", err)
	}
	got := loaded.Get("intercom")
	if got == nil || got.Config["token"] != "abc" {
		t.Errorf("LoadImporterConfigs() = %+v", loaded)
	}
}
