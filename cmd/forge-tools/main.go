// Command forge-tools is an MCP stdio server hosting the coding tools:
// shell execution, file access, todo tracking, and HTTP fetch. Run it as
// a tool server for forge or any other MCP client:
//
//	forge -mcp tools=forge-tools <task>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spetersoncode/forge/mcp"
	"github.com/spetersoncode/forge/tool"
)

const instructions = `Coding tools for working inside a project directory:
shell command execution, file read/write/edit, a shared todo list, and
HTTP fetch. File and shell tools operate relative to the server's working
directory.`

func main() {
	workDir := flag.String("dir", ".", "directory the shell and file tools operate in")
	flag.Parse()

	registry := tool.NewRegistry()
	registry.Add(tool.NewShellTool(tool.WithWorkDir(*workDir)))
	for _, reg := range tool.FileTools(tool.WithBasePath(*workDir)) {
		registry.Add(reg)
	}
	for _, reg := range tool.TodoTools(tool.NewTodoManager()) {
		registry.Add(reg)
	}
	registry.Add(tool.NewFetchTool())

	err := mcp.ServeStdio(registry,
		mcp.WithName("forge-tools"),
		mcp.WithVersion("1.0.0"),
		mcp.WithInstructions(instructions),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forge-tools: %v\n", err)
		os.Exit(1)
	}
}
