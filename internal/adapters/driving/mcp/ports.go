package mcp

import (
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driving"
)

// Engine bundles the services built for one set of language files.
type Engine struct {
	Deserialize driving.DeserializeService
	Measure     driving.MeasureService
}

// EngineFunc builds an Engine for the configured language files plus the
// given ones.
type EngineFunc func(languageFiles []string) (*Engine, error)

// Ports aggregates what the MCP server needs from the core.
type Ports struct {
	// Engine builds services per tool call.
	Engine EngineFunc

	// History lists recorded measurements. Optional.
	History driving.MeasureService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}
