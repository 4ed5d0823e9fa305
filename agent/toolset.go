package agent

import (
	"context"
	"errors"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/mcp"
	"github.com/spetersoncode/forge/tool"
)

// ToolSet merges in-process tools with remote tools proxied to out-of-process
// tool servers. Remote tools carry fully-qualified names, so the two kinds
// never collide; resolution happens once at agent construction, not per call.
type ToolSet struct {
	local  *tool.Registry
	remote []*mcp.RemoteRegistry
}

// NewToolSet builds a tool set from a local registry and any number of
// remote registries. A nil local registry is replaced with an empty one.
func NewToolSet(local *tool.Registry, remote ...*mcp.RemoteRegistry) *ToolSet {
	if local == nil {
		local = tool.NewRegistry()
	}
	return &ToolSet{local: local, remote: remote}
}

// Local returns the in-process registry.
func (s *ToolSet) Local() *tool.Registry {
	return s.local
}

// Tools returns the full declaration set, local tools first.
func (s *ToolSet) Tools() []ai.Tool {
	tools := s.local.Tools()
	for _, r := range s.remote {
		tools = append(tools, r.Tools()...)
	}
	return tools
}

// Has reports whether a tool with the given name is resolvable.
func (s *ToolSet) Has(name string) bool {
	if s.local.Has(name) {
		return true
	}
	for _, r := range s.remote {
		if r.Has(name) {
			return true
		}
	}
	return false
}

// Cleanup returns the cancellation hook for a local tool, if it declared
// one. Remote tools have no hooks; cancelling them abandons the await and
// the server-side effect may still complete.
func (s *ToolSet) Cleanup(name string) (tool.CleanupFunc, bool) {
	return s.local.Cleanup(name)
}

// Execute routes a call to the owning registry.
func (s *ToolSet) Execute(ctx context.Context, call ai.ToolCall) (tool.Result, error) {
	if s.local.Has(call.Name) {
		return s.local.Execute(ctx, call)
	}
	for _, r := range s.remote {
		if r.Has(call.Name) {
			return r.Execute(ctx, call)
		}
	}
	return nil, &tool.ErrToolNotFound{Name: call.Name}
}

// Close shuts down all remote registries.
func (s *ToolSet) Close() error {
	var errs []error
	for _, r := range s.remote {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
