// Package domain holds the workspace-level contracts shared across ricemill:
// the repository interface, workspace configuration and the audit event log.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"
)

// Audit event actions recorded to the workspace event log.
const (
	ActionWorkspaceInit   = "workspace.init"
	ActionFeedbackAdded   = "intake.feedback"
	ActionUsageAdded      = "intake.usage"
	ActionImportCompleted = "intake.import"
	ActionScoresComputed  = "scoring.computed"
	ActionModelTrained    = "scoring.model_trained"
	ActionLifecycleMoved  = "lifecycle.transition"
	ActionQueryAnswered   = "query.answered"
)

// Event represents a single auditable action in the system.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Action    string                 `json:"action"`
	Actor     string                 `json:"actor"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	PrevHash  string                 `json:"prev_hash,omitempty"`
	Hash      string                 `json:"hash,omitempty"`
}

// CalculateHash generates a deterministic SHA256 hash of the event data so
// the event log forms a tamper-evident chain.
func (e *Event) CalculateHash() string {
	h := sha256.New()
	h.Write([]byte(e.PrevHash))
	h.Write([]byte(e.ID))
	h.Write([]byte(e.Timestamp.Format(time.RFC3339Nano)))
	h.Write([]byte(e.Action))
	h.Write([]byte(e.Actor))
	h.Write([]byte(canonicalJSON(e.Metadata)))
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalJSON produces a deterministic JSON representation of metadata.
// Keys are sorted alphabetically to ensure consistent hashing.
func canonicalJSON(m map[string]interface{}) string {
	if len(m) == 0 {
		return ""
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]byte, 0, 256)
	ordered = append(ordered, '{')
	for i, k := range keys {
		if i > 0 {
			ordered = append(ordered, ',')
		}
		keyJSON, _ := json.Marshal(k)
		valJSON, _ := json.Marshal(m[k])
		ordered = append(ordered, keyJSON...)
		ordered = append(ordered, ':')
		ordered = append(ordered, valJSON...)
	}
	ordered = append(ordered, '}')

	return string(ordered)
}

// QueryLogEntry is one line of the query audit log.
type QueryLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Kind      string    `json:"kind"`
	Answer    string    `json:"answer"`
}
