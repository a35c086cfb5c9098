package tools

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter decides which tools are exposed, by glob over tool names
// ("list_*", "get_job_*"). A nil Filter exposes everything.
type Filter struct {
	patterns []string
}

func NewFilter(patterns []string) (*Filter, error) {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid tool pattern %q", p)
		}
		cleaned = append(cleaned, p)
	}

	if len(cleaned) == 0 {
		return nil, nil
	}
	return &Filter{patterns: cleaned}, nil
}

func (f *Filter) Allow(name string) bool {
	if f == nil {
		return true
	}
	for _, p := range f.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.patterns...)
}
