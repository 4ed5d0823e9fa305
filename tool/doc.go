// Package tool provides tool infrastructure for the forge library.
//
// This package includes:
//   - Registry and Handler types for tool management
//   - Typed registration with automatic schema generation from struct tags
//   - The closed Result variant set (text, finish, shorten) consumed by the
//     agent engine
//   - Built-in coding tools (shell, file, todo, fetch)
//
// # Basic Usage
//
// Define tool arguments as a struct with tags, then register a typed handler:
//
//	type SearchArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	}
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("search", "Search the web",
//	        func(ctx context.Context, args SearchArgs) (string, error) {
//	            return doSearch(args.Query), nil
//	        }),
//	    tool.NewShellTool(),
//	)
//
// # Supported Struct Tags
//
//	json:"name"      - Property name (required for inclusion)
//	desc:"text"      - Description for the model
//	required:"true"  - Mark field as required
//	enum:"a,b,c"     - Allowed values (comma-separated)
package tool
