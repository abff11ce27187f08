package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/blogwriter-backend/internal/domain/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/catalog"
)

type inputFile struct {
	types.WriterContext
	Items []types.WriterContext       `json:"items"`
	Packs map[string]catalog.PackInfo `json:"packs"`
}

// loadInputFile reads a YAML or JSON writer-context file. YAML is normalised to JSON first
// so decimals and enums decode the same way the HTTP API decodes them.
func loadInputFile(path string) ([]types.WriterContext, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return parseInput(raw, filepath.Ext(path))
}

func parseInput(raw []byte, ext string) ([]types.WriterContext, error) {
	data := raw
	if ext := strings.ToLower(ext); ext == ".yaml" || ext == ".yml" {
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("normalise yaml: %w", err)
		}
		data = b
	}
	var in inputFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	batch := in.Items
	if len(batch) == 0 {
		if strings.TrimSpace(in.Topic.Title) == "" {
			return nil, fmt.Errorf("input has no topic and no items")
		}
		batch = []types.WriterContext{in.WriterContext}
	}
	rule := catalog.DefaultBulkRule()
	for i := range batch {
		bt, ok := types.ParseBlogType(string(batch[i].Topic.BlogType))
		if !ok {
			return nil, fmt.Errorf("item %d: unknown blog type %q", i, batch[i].Topic.BlogType)
		}
		batch[i].Topic.BlogType = bt
		batch[i].AvailableProducts = catalog.Annotate(batch[i].AvailableProducts, in.Packs, rule)
	}
	return batch, nil
}
