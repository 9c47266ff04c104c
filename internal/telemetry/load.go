package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LoadFacts reads a collector facts bundle from a JSON file.
// A bundle without a tenant_id is rejected; missing categories are left nil
// for the normalizer to flag.
func LoadFacts(path string) (*Facts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading facts file: %w", err)
	}
	return ParseFacts(data)
}

// ParseFacts decodes a facts bundle from raw JSON.
func ParseFacts(data []byte) (*Facts, error) {
	var f Facts
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing facts: %w", err)
	}
	if f.TenantID == "" {
		return nil, fmt.Errorf("facts bundle has no tenant_id")
	}
	if f.CollectedAt.IsZero() {
		f.CollectedAt = time.Now().UTC()
	}
	return &f, nil
}
