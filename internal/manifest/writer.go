package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// New creates an empty manifest with defaults.
func New(source, profileName string, width int) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      source,
		Profile:     profileName,
		Width:       width,
	}
}

// ComputeStats recalculates aggregate statistics from passes.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalPasses = len(m.Passes)
	digests := map[string]bool{}
	for _, p := range m.Passes {
		switch {
		case p.Error != "":
			s.FailedPasses++
		case p.Path == "":
			s.EmptyPasses++
		default:
			digests[p.Digest] = true
			s.TotalBytes += p.Size
		}
	}
	s.DistinctFrames = len(digests)
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file, passes ordered by skip.
func WriteJSON(m *Manifest, path string) error {
	sort.SliceStable(m.Passes, func(i, j int) bool { return m.Passes[i].Skip < m.Passes[j].Skip })
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest and checks its schema version.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Version != SupportedManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d", m.Version)
	}
	return &m, nil
}
