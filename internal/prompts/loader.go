// Package prompts loads the chat prompt templates embedded at compile time.
// Templates are stored as JSON objects of name -> text/template source.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

var funcs = template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": strings.Join,
}

// cache stores parsed prompt files and compiled templates
var (
	cache    = make(map[string]map[string]string)
	compiled = make(map[string]*template.Template)
	cacheMu  sync.RWMutex
)

// Get retrieves the raw template source by filename and key.
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	return prompt, nil
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Render executes the template stored under key with data.
func Render(filename, key string, data any) (string, error) {
	tmpl, err := lookup(filename, key)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return b.String(), nil
}

func lookup(filename, key string) (*template.Template, error) {
	id := filename + "#" + key

	cacheMu.RLock()
	tmpl, ok := compiled[id]
	cacheMu.RUnlock()
	if ok {
		return tmpl, nil
	}

	src, err := Get(filename, key)
	if err != nil {
		return nil, err
	}
	tmpl, err = template.New(id).Funcs(funcs).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt %s/%s: %w", filename, key, err)
	}

	cacheMu.Lock()
	compiled[id] = tmpl
	cacheMu.Unlock()
	return tmpl, nil
}

// loadFile loads and caches a prompt file.
func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if prompts, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return prompts, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = prompts
	cacheMu.Unlock()

	return prompts, nil
}

// ClearCache drops parsed files and compiled templates.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	compiled = make(map[string]*template.Template)
	cacheMu.Unlock()
}

// List returns the prompt keys in a file, sorted.
func List(filename string) ([]string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
