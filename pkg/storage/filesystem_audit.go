package storage

import (
	"github.com/felixgeelhaar/ricemill/pkg/domain"
	"github.com/felixgeelhaar/ricemill/pkg/domain/events"
)

// RecordEvent appends one audit event to events.jsonl.
func (r *FilesystemRepository) RecordEvent(event domain.Event) error {
	path, err := r.ResolvePath(EventsFile)
	if err != nil {
		return err
	}
	return appendJSONLines(path, event)
}

// LoadEvents reads the full audit log.
func (r *FilesystemRepository) LoadEvents() ([]domain.Event, error) {
	path, err := r.ResolvePath(EventsFile)
	if err != nil {
		return nil, err
	}
	return readJSONLines[domain.Event](path)
}

// AppendQuery appends one stakeholder query to queries.jsonl.
func (r *FilesystemRepository) AppendQuery(entry domain.QueryLogEntry) error {
	path, err := r.ResolvePath(QueriesFile)
	if err != nil {
		return err
	}
	return appendJSONLines(path, entry)
}

// LoadQueries reads the query audit log.
func (r *FilesystemRepository) LoadQueries() ([]domain.QueryLogEntry, error) {
	path, err := r.ResolvePath(QueriesFile)
	if err != nil {
		return nil, err
	}
	return readJSONLines[domain.QueryLogEntry](path)
}

// AppendDeadLetter records a failed webhook delivery to deadletters.jsonl.
func (r *FilesystemRepository) AppendDeadLetter(letter events.DeadLetter) error {
	path, err := r.ResolvePath(DeadLetterFile)
	if err != nil {
		return err
	}
	return appendJSONLines(path, letter)
}

// LoadDeadLetters reads the failed-delivery log.
func (r *FilesystemRepository) LoadDeadLetters() ([]events.DeadLetter, error) {
	path, err := r.ResolvePath(DeadLetterFile)
	if err != nil {
		return nil, err
	}
	return readJSONLines[events.DeadLetter](path)
}
