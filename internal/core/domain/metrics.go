package domain

import "time"

// ClassifierInstantiation counts the nodes of one classifier in a chunk.
type ClassifierInstantiation struct {
	// Name is the classifier name, empty if the classifier is not known.
	Name     string `json:"name,omitempty"`
	Key      string `json:"key"`
	Language string `json:"language"`
	Version  string `json:"version"`
	Count    int    `json:"count"`
}

// Pointer returns the meta-pointer of the counted classifier.
func (c ClassifierInstantiation) Pointer() MetaPointer {
	return MetaPointer{Language: c.Language, Version: c.Version, Key: c.Key}
}

// ChunkMetrics describes how a chunk uses its languages.
type ChunkMetrics struct {
	// Instantiations are grouped by classifier, in first-seen order.
	Instantiations []ClassifierInstantiation `json:"instantiations"`

	// UnusedConcreteConcepts are concrete concepts of the supplied
	// languages that no node instantiates.
	UnusedConcreteConcepts []MetaPointer `json:"unusedConcreteConcepts"`
}

// TotalNodes returns the number of counted nodes.
func (m *ChunkMetrics) TotalNodes() int {
	total := 0
	for _, inst := range m.Instantiations {
		total += inst.Count
	}
	return total
}

// MetricsRun is a recorded measurement of one chunk file.
type MetricsRun struct {
	// ID is a generated run identifier.
	ID string

	// ChunkPath is the measured file.
	ChunkPath string

	Metrics ChunkMetrics

	// CreatedAt is when the measurement was taken.
	CreatedAt time.Time
}
