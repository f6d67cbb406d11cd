package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed modules.schema.json
var modulesSchema string

const modulesSchemaURL = "https://contracts.schemas.local/modules.schema.json"

// Modules is the construction-time configuration of every contract module.
type Modules struct {
	// Requires is a semver constraint every module version must satisfy.
	Requires       string               `yaml:"requires,omitempty" json:"requires,omitempty"`
	Wallet         WalletConfig         `yaml:"wallet" json:"wallet"`
	Pension        PensionConfig        `yaml:"pension" json:"pension"`
	FaultTolerance FaultToleranceConfig `yaml:"fault_tolerance" json:"fault_tolerance"`
	Quorum         QuorumConfig         `yaml:"quorum" json:"quorum"`
	Replication    ReplicationConfig    `yaml:"replication" json:"replication"`
}

// WalletConfig configures the time-locked wallet.
type WalletConfig struct {
	ReleaseMarker uint64 `yaml:"release_marker" json:"release_marker"`
}

// PensionConfig configures the epoch-locked pension.
type PensionConfig struct {
	ReleaseEpoch uint64 `yaml:"release_epoch" json:"release_epoch"`
}

// FaultToleranceConfig holds the maximum faulty fraction.
type FaultToleranceConfig struct {
	Bound float64 `yaml:"bound" json:"bound"`
}

// QuorumConfig holds the quorum ratio and the size of the electorate.
type QuorumConfig struct {
	Bound    float64 `yaml:"bound" json:"bound"`
	Eligible uint64  `yaml:"eligible" json:"eligible"`
}

// ReplicationConfig lists the nodes every record is copied to.
type ReplicationConfig struct {
	Nodes []string `yaml:"nodes" json:"nodes"`
}

// ModulesSchema returns the JSON Schema the module file is validated against.
func ModulesSchema() string { return modulesSchema }

// LoadModules reads and validates the module file at path.
func LoadModules(path string) (*Modules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load modules %q: %w", path, err)
	}
	m, err := ParseModules(data)
	if err != nil {
		return nil, fmt.Errorf("load modules %q: %w", path, err)
	}
	return m, nil
}

// ParseModules validates YAML module configuration against the schema and
// decodes it.
func ParseModules(data []byte) (*Modules, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse modules: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var m Modules
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode modules: %w", err)
	}
	return &m, nil
}

func validate(doc any) error {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(modulesSchemaURL, strings.NewReader(modulesSchema)); err != nil {
		return fmt.Errorf("modules schema load failed: %w", err)
	}
	schema, err := c.Compile(modulesSchemaURL)
	if err != nil {
		return fmt.Errorf("modules schema compile failed: %w", err)
	}

	// Round-trip through JSON so numbers reach the validator as json.Number.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("modules: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("modules: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("modules schema validation failed: %w", err)
	}
	return nil
}
