package prompts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yungbote/blogwriter-backend/internal/platform/promptstyle"
)

const (
	DefaultMinFAQs  = 3
	DefaultMinWords = 800
	DefaultMaxWords = 1500
)

type Template struct {
	Name       PromptName
	Version    int
	SchemaName string
	Schema     func() map[string]any
	System     func(Input) string
	User       func(Input) string
	Validate   Validator
}

var (
	registryMu sync.RWMutex
	registry   = map[PromptName]Template{}
)

// Register registers a compiled Template.
func Register(t Template) {
	registryMu.Lock()
	registry[t.Name] = t
	registryMu.Unlock()
}

func lookup(name PromptName) (Template, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[name]
	return t, ok
}

// Build renders the named prompt. The output contract and length targets are filled in
// from the template's schema when the caller leaves them empty.
func Build(name PromptName, in Input) (Prompt, error) {
	t, ok := lookup(name)
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", string(name))
	}
	if t.Schema == nil {
		return Prompt{}, fmt.Errorf("prompt %s missing schema", string(name))
	}
	if t.System == nil || t.User == nil {
		return Prompt{}, fmt.Errorf("prompt %s missing system/user renderers", string(name))
	}
	if t.Validate != nil {
		if err := t.Validate(in); err != nil {
			return Prompt{}, fmt.Errorf("%s: %w", string(name), err)
		}
	}
	schema := t.Schema()
	if in.MinFAQs <= 0 {
		in.MinFAQs = DefaultMinFAQs
	}
	if in.MinWords <= 0 {
		in.MinWords = DefaultMinWords
	}
	if in.MaxWords <= 0 {
		in.MaxWords = DefaultMaxWords
	}
	if strings.TrimSpace(in.OutputContract) == "" {
		in.OutputContract = RenderContract(schema)
	}
	return Prompt{
		Name:       string(t.Name),
		Version:    t.Version,
		SchemaName: strings.TrimSpace(t.SchemaName),
		Schema:     schema,
		System:     promptstyle.ApplySystem(t.System(in), "json"),
		User:       strings.TrimSpace(t.User(in)),
	}, nil
}

func Schema(name PromptName) (schemaName string, schema map[string]any, ok bool) {
	t, ok := lookup(name)
	if !ok || t.Schema == nil {
		return "", nil, false
	}
	return t.SchemaName, t.Schema(), true
}
