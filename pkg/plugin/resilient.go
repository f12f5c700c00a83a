package plugin

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	domainPlugin "github.com/felixgeelhaar/ricemill/pkg/domain/plugin"
)

const (
	initTimeout  = 30 * time.Second
	fetchTimeout = 2 * time.Minute
)

// ResilientImporter bounds how long an external importer process may take.
// A hung plugin must not hang the host.
type ResilientImporter struct {
	inner domainPlugin.Importer
}

func NewResilientImporter(inner domainPlugin.Importer) *ResilientImporter {
	return &ResilientImporter{inner: inner}
}

func (p *ResilientImporter) Init(config map[string]string) error {
	t := timeout.New[struct{}](timeout.Config{
		DefaultTimeout: initTimeout,
	})
	_, err := t.Execute(context.Background(), initTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.inner.Init(config)
	})
	return err
}

func (p *ResilientImporter) Fetch() ([]feedback.Record, error) {
	t := timeout.New[[]feedback.Record](timeout.Config{
		DefaultTimeout: fetchTimeout,
	})
	return t.Execute(context.Background(), fetchTimeout, func(ctx context.Context) ([]feedback.Record, error) {
		return p.inner.Fetch()
	})
}
