package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed streampay.yaml
var raw []byte

type Parameter struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Required    bool   `yaml:"required" json:"required"`
	Description string `yaml:"description" json:"description"`
	Example     string `yaml:"example" json:"example"`
}

// Endpoint documents one gateway call
type Endpoint struct {
	Key             string                 `yaml:"key" json:"key"`
	Endpoint        string                 `yaml:"endpoint" json:"endpoint"`
	Method          string                 `yaml:"method" json:"method"`
	Description     string                 `yaml:"description" json:"description"`
	Parameters      []Parameter            `yaml:"parameters" json:"parameters"`
	RequestExample  map[string]interface{} `yaml:"request_example" json:"request_example,omitempty"`
	ResponseExample map[string]interface{} `yaml:"response_example" json:"response_example,omitempty"`
}

// RequestJSON renders the request example for display
func (e Endpoint) RequestJSON() string { return pretty(e.RequestExample) }

// ResponseJSON renders the response example for display
func (e Endpoint) ResponseJSON() string { return pretty(e.ResponseExample) }

type FlowStep struct {
	Step        int    `yaml:"step" json:"step"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Reference is the whole documentation panel
type Reference struct {
	Endpoints []Endpoint `yaml:"endpoints" json:"endpoints"`
	Flow      []FlowStep `yaml:"flow" json:"flow"`
}

// Find returns the endpoint with the given key
func (r *Reference) Find(key string) (Endpoint, bool) {
	for _, e := range r.Endpoints {
		if e.Key == key {
			return e, true
		}
	}
	return Endpoint{}, false
}

// Load parses the embedded reference
func Load() (*Reference, error) {
	return parse(raw)
}

func parse(data []byte) (*Reference, error) {
	var ref Reference
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("failed to parse docs: %w", err)
	}
	if len(ref.Endpoints) == 0 {
		return nil, fmt.Errorf("docs contain no endpoints")
	}
	return &ref, nil
}

func pretty(v map[string]interface{}) string {
	if len(v) == 0 {
		return ""
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}
