// Package plugin defines the contract external intake importers implement.
// Importers run as separate processes speaking net/rpc via hashicorp
// go-plugin and hand ricemill batches of feedback records.
package plugin

import (
	"net/rpc"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/hashicorp/go-plugin"
)

// Importer is the interface intake plugins must implement.
type Importer interface {
	// Init gives the plugin its configuration and lets it verify
	// connectivity before any fetch runs.
	Init(config map[string]string) error

	// Fetch pulls feedback records from the external system.
	Fetch() ([]feedback.Record, error)
}

// ImporterPlugin is the go-plugin wrapper serving or consuming an Importer.
type ImporterPlugin struct {
	Impl Importer
}

func (p *ImporterPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &ImporterRPCServer{Impl: p.Impl}, nil
}

func (p *ImporterPlugin) Client(b *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &ImporterRPCClient{Client: c}, nil
}

// FetchReply carries the fetch result across the RPC boundary.
type FetchReply struct {
	Records []feedback.Record
}

// ImporterRPCClient is the host-side proxy.
type ImporterRPCClient struct{ Client *rpc.Client }

func (c *ImporterRPCClient) Init(config map[string]string) error {
	var resp interface{}
	return c.Client.Call("Plugin.Init", config, &resp)
}

func (c *ImporterRPCClient) Fetch() ([]feedback.Record, error) {
	var resp FetchReply
	if err := c.Client.Call("Plugin.Fetch", new(interface{}), &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// ImporterRPCServer is the plugin-side dispatcher.
type ImporterRPCServer struct{ Impl Importer }

func (s *ImporterRPCServer) Init(config map[string]string, resp *interface{}) error {
	return s.Impl.Init(config)
}

func (s *ImporterRPCServer) Fetch(args interface{}, resp *FetchReply) error {
	records, err := s.Impl.Fetch()
	if err != nil {
		return err
	}
	resp.Records = records
	return nil
}
