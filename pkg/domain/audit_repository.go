package domain

// AuditRepository handles persistence of audit events and the query log.
type AuditRepository interface {
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
	AppendQuery(entry QueryLogEntry) error
	LoadQueries() ([]QueryLogEntry, error)
}
