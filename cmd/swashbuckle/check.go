package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const refPrefix = "#/definitions/"

// checkDocument parses a spec document (JSON or YAML, both handled by the
// YAML parser) and verifies its basic shape: the version marker is present
// and every definition reference resolves against the definitions table.
func checkDocument(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}

	if v, _ := doc["swagger"].(string); v != "2.0" {
		return "", fmt.Errorf("unexpected document version %q (want \"2.0\")", v)
	}

	defs := map[string]bool{}
	if m, ok := doc["definitions"].(map[string]any); ok {
		for id := range m {
			defs[id] = true
		}
	}

	var missing []string
	collectRefs(doc, func(ref string) {
		id := strings.TrimPrefix(ref, refPrefix)
		if id == ref || !defs[id] {
			missing = append(missing, ref)
		}
	})

	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("unresolvable references: %s", strings.Join(missing, ", "))
	}

	paths := 0
	if m, ok := doc["paths"].(map[string]any); ok {
		paths = len(m)
	}
	return fmt.Sprintf("ok: %d paths, %d definitions", paths, len(defs)), nil
}

// collectRefs walks the parsed document and reports every $ref value.
func collectRefs(v any, report func(string)) {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			if k == "$ref" {
				if ref, ok := item.(string); ok {
					report(ref)
					continue
				}
			}
			collectRefs(item, report)
		}
	case []any:
		for _, item := range val {
			collectRefs(item, report)
		}
	}
}
