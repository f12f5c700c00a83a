// ricemill-plugin-mock is a sample importer used to exercise the plugin
// protocol end to end. It fabricates a small batch of feedback records.
package main

import (
	"errors"
	"log"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	domainPlugin "github.com/felixgeelhaar/ricemill/pkg/domain/plugin"
	hostPlugin "github.com/felixgeelhaar/ricemill/pkg/plugin"
	"github.com/hashicorp/go-plugin"
)

type MockImporter struct {
	prefix string
}

func (m *MockImporter) Init(config map[string]string) error {
	if config["fail"] == "true" {
		return errors.New("mock importer configured to fail")
	}
	m.prefix = config["prefix"]
	if m.prefix == "" {
		m.prefix = "Mock"
	}
	return nil
}

func (m *MockImporter) Fetch() ([]feedback.Record, error) {
	log.Printf("Fetching mock feedback with prefix %q", m.prefix)

	records := make([]feedback.Record, 0, 3)
	for i, feature := range []string{"feature A", "feature B", "feature C"} {
		r := feedback.NewRecord("mock-customer", m.prefix+" "+feature)
		r.Source = "plugin:mock"
		r.Effort = 3 + i
		r.BusinessValue = 5 + i
		r.CreatedAt = time.Now().UTC()
		records = append(records, *r)
	}
	return records, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: hostPlugin.HandshakeConfig,
		Plugins: map[string]plugin.Plugin{
			"importer": &domainPlugin.ImporterPlugin{Impl: &MockImporter{}},
		},
	})
}
