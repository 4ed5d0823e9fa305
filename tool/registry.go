package tool

import (
	"context"
	"encoding/json"
	"sync"

	ai "github.com/spetersoncode/forge"
)

// registeredTool combines a tool definition with its handler and an
// optional cancellation cleanup hook.
type registeredTool struct {
	tool    ai.Tool
	handler ResultHandler
	cleanup CleanupFunc
}

// Registry manages registered tools and their handlers.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]registeredTool),
	}
}

// Register adds a tool with its handler to the registry.
// Returns an error if a tool with the same name is already registered.
func (r *Registry) Register(tool ai.Tool, handler Handler) error {
	return r.RegisterResult(tool, wrapHandler(handler), nil)
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(tool ai.Tool, handler Handler) {
	if err := r.Register(tool, handler); err != nil {
		panic(err)
	}
}

// RegisterResult adds a tool whose handler returns a typed Result, with
// an optional cleanup hook invoked when a running call is cancelled.
func (r *Registry) RegisterResult(tool ai.Tool, handler ResultHandler, cleanup CleanupFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return &ErrToolAlreadyRegistered{Name: tool.Name}
	}

	r.tools[tool.Name] = registeredTool{
		tool:    tool,
		handler: handler,
		cleanup: cleanup,
	}
	return nil
}

// Unregister removes a tool from the registry.
// It is a no-op if the tool is not registered.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// GetTool retrieves a tool definition by name.
// Returns the tool and true if found, or empty tool and false if not found.
func (r *Registry) GetTool(name string) (ai.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return ai.Tool{}, false
	}
	return rt.tool, true
}

// Cleanup retrieves the cancellation cleanup hook for a tool, if any.
func (r *Registry) Cleanup(name string) (CleanupFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok || rt.cleanup == nil {
		return nil, false
	}
	return rt.cleanup, true
}

// Tools returns all registered tool definitions.
// This is used to pass the tools to the ChatProvider.
func (r *Registry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.tools))
	for _, rt := range r.tools {
		tools = append(tools, rt.tool)
	}
	return tools
}

// Names returns the names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Has returns true if a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Execute runs the handler for a tool call and returns its Result.
// If the tool is not found, returns ErrToolNotFound.
// If the handler returns an error, the error is captured in a TextResult
// with IsError set, so the model can see the failure and recover.
func (r *Registry) Execute(ctx context.Context, call ai.ToolCall) (Result, error) {
	r.mu.RLock()
	rt, ok := r.tools[call.Name]
	r.mu.RUnlock()

	if !ok {
		return nil, &ErrToolNotFound{Name: call.Name}
	}

	result, err := rt.handler(ctx, call)
	if err != nil {
		return TextResult{Content: err.Error(), IsError: true}, nil
	}
	return result, nil
}

// wrapHandler lifts a plain Handler into a ResultHandler producing TextResults.
func wrapHandler(h Handler) ResultHandler {
	return func(ctx context.Context, call ai.ToolCall) (Result, error) {
		content, err := h(ctx, call)
		if err != nil {
			return nil, err
		}
		return TextResult{Content: content}, nil
	}
}

// RegisterFunc registers a tool with a typed handler that automatically
// unmarshals the arguments JSON into the specified type T.
//
// Example:
//
//	type SearchArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	}
//
//	tool.RegisterFunc(registry, "search", "Search the web",
//	    func(ctx context.Context, args SearchArgs) (string, error) {
//	        return doSearch(args.Query), nil
//	    },
//	)
func RegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	schema, err := ai.SchemaFor[T]()
	if err != nil {
		return err
	}

	t := ai.Tool{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}

	return r.Register(t, typedHandler(fn))
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func MustRegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := RegisterFunc(r, name, description, fn); err != nil {
		panic(err)
	}
}

func typedHandler[T any](fn TypedHandler[T]) Handler {
	return func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args T
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", err
		}
		return fn(ctx, args)
	}
}

// Registration holds a tool, its handler, and an optional cleanup hook
// for fluent registration.
type Registration struct {
	Tool    ai.Tool
	Handler Handler
	// ResultHandler takes precedence over Handler when set. Lifecycle
	// tools use it to return non-text Result variants.
	ResultHandler ResultHandler
	Cleanup       CleanupFunc
}

// Func creates a Registration with automatic schema generation from the typed handler.
// Panics if schema generation fails.
//
// Example:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("weather", "Get weather", func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return getWeather(args.Location), nil
//	    }),
//	)
func Func[T any](name, description string, fn TypedHandler[T]) Registration {
	return Registration{
		Tool: ai.Tool{
			Name:        name,
			Description: description,
			Parameters:  ai.MustSchemaFor[T](),
		},
		Handler: typedHandler(fn),
	}
}

// WithTool creates a Registration from an existing Tool and Handler.
// Use this when you have pre-built tool definitions.
func WithTool(t ai.Tool, h Handler) Registration {
	return Registration{
		Tool:    t,
		Handler: h,
	}
}

// Add registers one or more tools to the registry.
// Panics if any tool is already registered.
// Returns the registry for fluent chaining.
func (r *Registry) Add(regs ...Registration) *Registry {
	for _, reg := range regs {
		handler := reg.ResultHandler
		if handler == nil {
			handler = wrapHandler(reg.Handler)
		}
		if err := r.RegisterResult(reg.Tool, handler, reg.Cleanup); err != nil {
			panic(err)
		}
	}
	return r
}

// RegisterAll registers all tool pairs to a registry.
// Returns the first error encountered, or nil if all registrations succeed.
func RegisterAll(r *Registry, pairs []ToolPair) error {
	for _, p := range pairs {
		if err := r.Register(p.Tool, p.Handler); err != nil {
			return err
		}
	}
	return nil
}
