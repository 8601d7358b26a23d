package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MergeMirrors merges mirror assignments from a file with inline assignments
func (m *Mirrors) MergeMirrors() error {
	if m.FromFile == "" {
		return nil
	}

	data, err := os.ReadFile(m.FromFile)
	if err != nil {
		return fmt.Errorf("reading mirrors file: %w", err)
	}

	var fileMirrors map[string]bool
	if err := json.Unmarshal(data, &fileMirrors); err != nil {
		return fmt.Errorf("parsing mirrors file: %w", err)
	}

	if m.Inline == nil {
		m.Inline = make(map[string]bool)
	}

	// Inline takes precedence
	for wall, mirror := range fileMirrors {
		if _, exists := m.Inline[wall]; !exists {
			m.Inline[wall] = mirror
		}
	}

	return nil
}

// LoadAndMerge loads all external files and merges their contents
func (c *SessionConfig) LoadAndMerge() error {
	if err := c.Mirrors.MergeMirrors(); err != nil {
		return fmt.Errorf("merging mirrors: %w", err)
	}
	return nil
}
