package plugin_test

import (
	"errors"
	"net"
	"net/rpc"
	"testing"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/felixgeelhaar/ricemill/pkg/domain/plugin"
)

type stubImporter struct {
	records []feedback.Record
}

func (s *stubImporter) Init(config map[string]string) error { return nil }

func (s *stubImporter) Fetch() ([]feedback.Record, error) { return s.records, nil }

type errorImporter struct{}

func (e *errorImporter) Init(config map[string]string) error { return errors.New("init fail") }

func (e *errorImporter) Fetch() ([]feedback.Record, error) { return nil, errors.New("fetch fail") }

func stubRecords() []feedback.Record {
	r := feedback.NewRecord("cust-1", "Dark mode")
	return []feedback.Record{*r}
}

func TestImporterRPCServerFetch(t *testing.T) {
	server := &plugin.ImporterRPCServer{Impl: &stubImporter{records: stubRecords()}}

	var resp plugin.FetchReply
	if err := server.Fetch(nil, &resp); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(resp.Records) != 1 || resp.Records[0].Feature != "Dark mode" {
		t.Errorf("Fetch() = %+v, want one Dark mode record", resp.Records)
	}
}

func TestImporterRPCServerFetchError(t *testing.T) {
	server := &plugin.ImporterRPCServer{Impl: &errorImporter{}}
	var resp plugin.FetchReply
	if err := server.Fetch(nil, &resp); err == nil {
		t.Error("Fetch() expected error")
	}
}

func TestImporterRPCRoundTrip(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	srv := rpc.NewServer()
	impl := &stubImporter{records: stubRecords()}
	if err := srv.RegisterName("Plugin", &plugin.ImporterRPCServer{Impl: impl}); err != nil {
		t.Fatalf("register server: %v", err)
	}
	go srv.ServeConn(serverConn)

	client := rpc.NewClient(clientConn)
	defer func() {
		_ = client.Close()
		_ = serverConn.Close()
	}()

	rpcClient := &plugin.ImporterRPCClient{Client: client}

	if err := rpcClient.Init(map[string]string{"token": "x"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	records, err := rpcClient.Fetch()
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 1 || records[0].CustomerID != "cust-1" {
		t.Errorf("Fetch() = %+v, want the stub record", records)
	}
}

func TestImporterRPCErrorsPropagate(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	srv := rpc.NewServer()
	if err := srv.RegisterName("Plugin", &plugin.ImporterRPCServer{Impl: &errorImporter{}}); err != nil {
		t.Fatalf("register server: %v", err)
	}
	go srv.ServeConn(serverConn)

	client := rpc.NewClient(clientConn)
	defer func() {
		_ = client.Close()
		_ = serverConn.Close()
	}()

	rpcClient := &plugin.ImporterRPCClient{Client: client}

	if err := rpcClient.Init(nil); err == nil {
		t.Error("Init() expected error")
	}
	if _, err := rpcClient.Fetch(); err == nil {
		t.Error("Fetch() expected error")
	}
}

func TestImporterPluginWrappers(t *testing.T) {
	p := &plugin.ImporterPlugin{Impl: &stubImporter{}}

	if _, err := p.Server(nil); err != nil {
		t.Errorf("Server() error = %v", err)
	}

	serverConn, clientConn := net.Pipe()
	defer func() {
		_ = serverConn.Close()
		_ = clientConn.Close()
	}()

	rpcClient := rpc.NewClient(clientConn)
	defer func() { _ = rpcClient.Close() }()

	iface, err := p.Client(nil, rpcClient)
	if err != nil {
		t.Fatalf("Client() error = %v", err)
	}
	if _, ok := iface.(*plugin.ImporterRPCClient); !ok {
		t.Errorf("Client() returned %T, want *ImporterRPCClient", iface)
	}
}
