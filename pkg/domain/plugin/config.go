package plugin

// ImporterConfig names one configured importer binary and its settings.
type ImporterConfig struct {
	// Binary is the path to the importer executable.
	Binary string `yaml:"binary" json:"binary"`
	// Config holds importer-specific key-value settings passed to Init.
	Config map[string]string `yaml:"config" json:"config"`
}

// ImporterConfigs holds all configured importers by name.
type ImporterConfigs struct {
	Importers map[string]ImporterConfig `yaml:"importers" json:"importers"`
}

// NewImporterConfigs creates an empty importer configuration.
func NewImporterConfigs() *ImporterConfigs {
	return &ImporterConfigs{Importers: make(map[string]ImporterConfig)}
}

// Get returns the configuration for name, or nil when unknown.
func (c *ImporterConfigs) Get(name string) *ImporterConfig {
	if c.Importers == nil {
		return nil
	}
	cfg, ok := c.Importers[name]
	if !ok {
		return nil
	}
	return &cfg
}

// Set adds or updates an importer configuration.
func (c *ImporterConfigs) Set(name string, cfg ImporterConfig) {
	if c.Importers == nil {
		c.Importers = make(map[string]ImporterConfig)
	}
	c.Importers[name] = cfg
}

// Remove deletes an importer configuration.
func (c *ImporterConfigs) Remove(name string) {
	if c.Importers != nil {
		delete(c.Importers, name)
	}
}

// Names returns all configured importer names.
func (c *ImporterConfigs) Names() []string {
	if c.Importers == nil {
		return nil
	}
	names := make([]string, 0, len(c.Importers))
	for name := range c.Importers {
		names = append(names, name)
	}
	return names
}
