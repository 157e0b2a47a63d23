package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

const uriScheme = "lionweb://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "languages",
		Name:        "languages",
		Description: "Languages loaded from the configured language files",
		MIMEType:    "application/json",
	}, s.handleLanguagesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "metrics",
		Name:        "metrics",
		Description: "Recorded chunk measurements, newest first",
		MIMEType:    "application/json",
	}, s.handleMetricsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "metrics/{runId}",
		Name:        "metrics-run",
		Description: "Classifier counts of one recorded measurement",
		MIMEType:    "application/json",
	}, s.handleMetricsRunResource)
}

type languageInfo struct {
	Key         string `json:"key"`
	Version     string `json:"version"`
	Name        string `json:"name"`
	Classifiers int    `json:"classifiers"`
}

type runInfo struct {
	ID        string    `json:"id"`
	Chunk     string    `json:"chunk"`
	Nodes     int       `json:"nodes"`
	Unused    int       `json:"unused"`
	CreatedAt time.Time `json:"created_at"`
}

// handleLanguagesResource lists the configured languages.
func (s *Server) handleLanguagesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	eng, err := s.ports.Engine(nil)
	if err != nil {
		return nil, err
	}

	languages := eng.Deserialize.Languages()
	infos := make([]languageInfo, len(languages))
	for i, lang := range languages {
		infos[i] = languageInfo{
			Key:         lang.Key,
			Version:     lang.Version,
			Name:        lang.Name,
			Classifiers: len(lang.Classifiers),
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleMetricsResource lists recorded measurements.
func (s *Server) handleMetricsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, []runInfo{})
	}

	run, err := s.ports.History.Run(ctx, runID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("reading measurement %s: %w", runID, err)
	}

	return jsonResult(uri, run.Metrics)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
