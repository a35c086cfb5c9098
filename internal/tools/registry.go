package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Tool is one callable entry of the catalog. Command is pure: it only
// turns arguments into a console command line.
type Tool interface {
	Name() string
	Description() string
	Schema() json.RawMessage
	Command(args Arguments) string
}

type AnnotatedTool interface {
	Tool
	Title() string
	Annotations() map[string]bool
}

// Runner executes one console command and returns its text output.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// Registry is filled once at startup and only read afterwards.
type Registry struct {
	runner Runner
	filter *Filter
	tools  map[string]Tool
	order  []string
}

func NewRegistry(runner Runner, filter *Filter) *Registry {
	return &Registry{
		runner: runner,
		filter: filter,
		tools:  make(map[string]Tool),
	}
}

func (r *Registry) Register(tool Tool) error {
	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}

	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get returns only tools the exposure filter allows.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	if !ok || !r.filter.Allow(name) {
		return nil, false
	}
	return tool, true
}

// Execute builds the tool's command and runs it. Every failure comes back
// as a *ToolError.
func (r *Registry) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	tool, ok := r.Get(name)
	if !ok {
		return "", NewToolNotFoundError(name)
	}

	command := tool.Command(ParseArguments(input))

	output, err := r.runner.Run(ctx, command)
	if err != nil {
		return "", NewToolExecutionError(name, err)
	}
	return output, nil
}

// List returns the exposed tools in registration order.
func (r *Registry) List() []Tool {
	result := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		if r.filter.Allow(name) {
			result = append(result, r.tools[name])
		}
	}
	return result
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, tool := range r.List() {
		names = append(names, tool.Name())
	}
	return names
}
