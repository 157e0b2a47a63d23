package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/factory/dynamic"
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

const defaultMaxNodes = 100

// DeserializeInput is the input schema for the deserialize tool.
type DeserializeInput struct {
	Chunk     string   `json:"chunk" jsonschema:"path of the chunk file to deserialize"`
	Languages []string `json:"languages,omitempty" jsonschema:"language definition files loaded in addition to the configured ones"`
	DependsOn []string `json:"depends_on,omitempty" jsonschema:"chunk files whose nodes references may target, in order"`
	MaxNodes  int      `json:"max_nodes,omitempty" jsonschema:"maximum number of nodes listed in the result (default 100)"`
}

// DeserializeOutput is the output schema for the deserialize tool.
type DeserializeOutput struct {
	Roots     []string     `json:"roots"`
	Nodes     int          `json:"nodes"`
	Links     int          `json:"links"`
	Listed    []NodeOutput `json:"listed"`
	Truncated bool         `json:"truncated,omitempty"`
}

// NodeOutput describes one deserialized node.
type NodeOutput struct {
	ID         string              `json:"id"`
	Classifier string              `json:"classifier"`
	Parent     string              `json:"parent,omitempty"`
	Properties map[string]any      `json:"properties,omitempty"`
	References map[string][]string `json:"references,omitempty"`
}

// MeasureInput is the input schema for the measure tool.
type MeasureInput struct {
	Chunk     string   `json:"chunk" jsonschema:"path of the chunk file to measure"`
	Languages []string `json:"languages,omitempty" jsonschema:"language definition files loaded in addition to the configured ones"`
	Record    bool     `json:"record,omitempty" jsonschema:"store the measurement in the metrics history"`
}

// MeasureOutput is the output schema for the measure tool.
type MeasureOutput struct {
	RunID   string              `json:"run_id,omitempty"`
	Nodes   int                 `json:"nodes"`
	Metrics domain.ChunkMetrics `json:"metrics"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deserialize",
		Description: "Rebuild the node graph of a LionWeb chunk file",
	}, s.handleDeserialize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "measure",
		Description: "Count how often a chunk instantiates each classifier",
	}, s.handleMeasure)
}

// handleDeserialize handles the deserialize tool invocation.
func (s *Server) handleDeserialize(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DeserializeInput,
) (*mcp.CallToolResult, DeserializeOutput, error) {
	if input.Chunk == "" {
		return nil, DeserializeOutput{}, fmt.Errorf("%w: chunk path is required", domain.ErrInvalidInput)
	}

	eng, err := s.ports.Engine(input.Languages)
	if err != nil {
		return nil, DeserializeOutput{}, err
	}

	var dependents []domain.Node
	for _, path := range input.DependsOn {
		result, err := eng.Deserialize.DeserializeFile(path, dependents)
		if err != nil {
			return nil, DeserializeOutput{}, fmt.Errorf("dependency failed: %w", err)
		}
		dependents = append(dependents, dynamic.Flatten(result.Roots)...)
	}

	result, err := eng.Deserialize.DeserializeFile(input.Chunk, dependents)
	if err != nil {
		return nil, DeserializeOutput{}, err
	}

	limit := input.MaxNodes
	if limit <= 0 {
		limit = defaultMaxNodes
	}

	output := DeserializeOutput{
		Roots:  make([]string, len(result.Roots)),
		Nodes:  result.Stats.Nodes,
		Links:  result.Stats.Links,
		Listed: []NodeOutput{},
	}
	for i, root := range result.Roots {
		output.Roots[i] = root.ID()
	}

	for _, node := range dynamic.Flatten(result.Roots) {
		if len(output.Listed) == limit {
			output.Truncated = true
			break
		}
		output.Listed = append(output.Listed, describe(node))
	}

	return nil, output, nil
}

// handleMeasure handles the measure tool invocation.
func (s *Server) handleMeasure(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MeasureInput,
) (*mcp.CallToolResult, MeasureOutput, error) {
	if input.Chunk == "" {
		return nil, MeasureOutput{}, fmt.Errorf("%w: chunk path is required", domain.ErrInvalidInput)
	}

	eng, err := s.ports.Engine(input.Languages)
	if err != nil {
		return nil, MeasureOutput{}, err
	}

	run, err := eng.Measure.MeasureFile(ctx, input.Chunk, input.Record)
	if err != nil {
		return nil, MeasureOutput{}, err
	}

	output := MeasureOutput{
		Nodes:   run.Metrics.TotalNodes(),
		Metrics: run.Metrics,
	}
	if input.Record {
		output.RunID = run.ID
	}
	return nil, output, nil
}

func describe(node domain.Node) NodeOutput {
	out := NodeOutput{ID: node.ID()}

	dn, ok := node.(*dynamic.Node)
	if !ok {
		return out
	}

	out.Classifier = dn.Classifier().Pointer().String()
	if parent := dn.Parent(); parent != nil {
		out.Parent = parent.ID()
	}

	for _, key := range dn.PropertyKeys() {
		if out.Properties == nil {
			out.Properties = make(map[string]any)
		}
		out.Properties[key], _ = dn.Property(key)
	}

	for _, key := range dn.ReferenceKeys() {
		if out.References == nil {
			out.References = make(map[string][]string)
		}
		for _, target := range dn.References(key) {
			out.References[key] = append(out.References[key], target.ID())
		}
	}

	return out
}
