// Package plugin loads external importer binaries over the hashicorp
// go-plugin net/rpc protocol.
package plugin

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	domainPlugin "github.com/felixgeelhaar/ricemill/pkg/domain/plugin"
	goplugin "github.com/hashicorp/go-plugin"
)

// HandshakeConfig guards against accidentally executing a binary that is not
// a ricemill importer.
var HandshakeConfig = goplugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "RICEMILL_PLUGIN",
	MagicCookieValue: "ricemill",
}

// PluginMap names the plugins a ricemill host will dispense.
var PluginMap = map[string]goplugin.Plugin{
	"importer": &domainPlugin.ImporterPlugin{},
}

// Loader starts importer processes and keeps their clients for cleanup.
type Loader struct {
	plugins map[string]*goplugin.Client
}

func NewLoader() *Loader {
	return &Loader{plugins: make(map[string]*goplugin.Client)}
}

// Load validates the binary path, starts the plugin process, and dispenses
// its Importer.
func (l *Loader) Load(path string) (domainPlugin.Importer, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid plugin path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("plugin not found: %s", absPath)
		}
		return nil, fmt.Errorf("cannot access plugin: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("plugin path is a directory: %s", absPath)
	}
	if runtime.GOOS != "windows" {
		if info.Mode()&0111 == 0 {
			return nil, fmt.Errorf("plugin is not executable: %s", absPath)
		}
	}

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins:         PluginMap,
		Cmd:             exec.Command(path),
		AllowedProtocols: []goplugin.Protocol{
			goplugin.ProtocolNetRPC,
		},
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to create plugin client: %w", err)
	}

	raw, err := rpcClient.Dispense("importer")
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	l.plugins[path] = client
	return raw.(domainPlugin.Importer), nil
}

// Cleanup kills every plugin process this loader started.
func (l *Loader) Cleanup() {
	for _, client := range l.plugins {
		client.Kill()
	}
}
