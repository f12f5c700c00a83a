package application

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/ricemill/pkg/domain"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/xeipuuv/gojsonschema"
)

// feedbackSchemaJSON validates bulk imports before anything touches the
// workspace log.
const feedbackSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["customer_id", "feature"],
    "properties": {
      "customer_id": { "type": "string", "minLength": 1 },
      "feature": { "type": "string", "minLength": 1 },
      "type": { "enum": ["feature_request", "enhancement", "bug_report"] },
      "priority": { "enum": ["low", "medium", "high", "critical"] },
      "source": { "type": "string" },
      "segment": { "type": "string" },
      "revenue_impact": { "type": "number", "minimum": 0 },
      "effort": { "type": "integer", "minimum": 1 },
      "business_value": { "type": "integer", "minimum": 1, "maximum": 10 }
    }
  }
}`

var feedbackSchemaLoader = gojsonschema.NewStringLoader(feedbackSchemaJSON)

// IntakeService appends feedback and usage signals to the workspace logs.
type IntakeService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewIntakeService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *IntakeService {
	return &IntakeService{repo: repo, audit: audit}
}

// AddFeedback records a single feedback entry.
func (s *IntakeService) AddFeedback(record *feedback.Record) error {
	if err := s.repo.AppendFeedback(record); err != nil {
		return err
	}
	return s.audit.Log(domain.ActionFeedbackAdded, "cli", map[string]interface{}{
		"feature":  record.Feature,
		"customer": record.CustomerID,
	})
}

// AddUsage records a single usage measurement.
func (s *IntakeService) AddUsage(record *feedback.Usage) error {
	if err := s.repo.AppendUsage(record); err != nil {
		return err
	}
	return s.audit.Log(domain.ActionUsageAdded, "cli", map[string]interface{}{
		"feature": record.Feature,
		"user":    record.UserID,
	})
}

// ImportRecords appends a batch of records under one audit event, naming the
// source system it came from.
func (s *IntakeService) ImportRecords(source string, records []*feedback.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	for _, r := range records {
		if r.Source == "" {
			r.Source = source
		}
	}
	if err := s.repo.AppendFeedback(records...); err != nil {
		return 0, err
	}
	err := s.audit.Log(domain.ActionImportCompleted, "cli", map[string]interface{}{
		"source": source,
		"count":  len(records),
	})
	return len(records), err
}

// ImportJSONFile validates a JSON document against the feedback schema and
// imports its records.
func (s *IntakeService) ImportJSONFile(path string) (int, error) {
	// #nosec G304 -- The import path is user-supplied by design.
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read import file: %w", err)
	}

	result, err := gojsonschema.Validate(feedbackSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to validate import file: %w", err)
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return 0, fmt.Errorf("import file does not match the feedback schema: %s", strings.Join(issues, "; "))
	}

	var raw []struct {
		CustomerID    string  `json:"customer_id"`
		Feature       string  `json:"feature"`
		Type          string  `json:"type"`
		Priority      string  `json:"priority"`
		Source        string  `json:"source"`
		Segment       string  `json:"segment"`
		RevenueImpact float64 `json:"revenue_impact"`
		Effort        int     `json:"effort"`
		BusinessValue int     `json:"business_value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("failed to parse import file: %w", err)
	}

	records := make([]*feedback.Record, 0, len(raw))
	for _, entry := range raw {
		r := feedback.NewRecord(entry.CustomerID, entry.Feature)
		if entry.Type != "" {
			r.Type = feedback.FeedbackType(entry.Type)
		}
		if entry.Priority != "" {
			r.Priority = feedback.PriorityLevel(entry.Priority)
		}
		r.Source = entry.Source
		r.Segment = entry.Segment
		r.RevenueImpact = entry.RevenueImpact
		if entry.Effort > 0 {
			r.Effort = entry.Effort
		}
		if entry.BusinessValue > 0 {
			r.BusinessValue = entry.BusinessValue
		}
		records = append(records, r)
	}

	return s.ImportRecords("json:"+path, records)
}
