package tool

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	ai "github.com/spetersoncode/forge"
)

// FileToolOption configures the file tools.
type FileToolOption func(*fileToolConfig)

type fileToolConfig struct {
	basePath    string
	maxFileSize int64
}

// WithBasePath restricts file operations to a specific directory.
// All paths will be resolved relative to this base path.
func WithBasePath(path string) FileToolOption {
	return func(c *fileToolConfig) {
		c.basePath = path
	}
}

// WithMaxFileSize sets the maximum file size for read/write operations.
// Default is 10MB.
func WithMaxFileSize(bytes int64) FileToolOption {
	return func(c *fileToolConfig) {
		c.maxFileSize = bytes
	}
}

func applyFileOpts(opts []FileToolOption) *fileToolConfig {
	cfg := &fileToolConfig{
		maxFileSize: 10 * 1024 * 1024,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *fileToolConfig) resolvePath(path string) (string, error) {
	path = filepath.Clean(path)
	if c.basePath == "" {
		return path, nil
	}

	base := filepath.Clean(c.basePath)
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(base, full)
	}

	rel, err := filepath.Rel(base, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside base path %q", path, base)
	}
	return full, nil
}

// readFileArgs defines arguments for the read file tool.
type readFileArgs struct {
	Path      string `json:"path" desc:"Path to the file to read." required:"true"`
	StartLine int    `json:"start_line" desc:"1-based line number to start reading from."`
	EndLine   int    `json:"end_line" desc:"1-based line number to stop reading at (inclusive)."`
}

// NewReadFileTool creates a tool for reading file contents, optionally
// restricted to a line range.
func NewReadFileTool(opts ...FileToolOption) Registration {
	cfg := applyFileOpts(opts)

	t := ai.Tool{
		Name:        "read_file",
		Description: "Read the contents of a file, optionally restricted to a line range.",
		Parameters:  ai.MustSchemaFor[readFileArgs](),
	}

	handler := typedHandler(func(ctx context.Context, args readFileArgs) (string, error) {
		path, err := cfg.resolvePath(args.Path)
		if err != nil {
			return "", err
		}

		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		if info.Size() > cfg.maxFileSize {
			return "", fmt.Errorf("file size %d exceeds maximum %d", info.Size(), cfg.maxFileSize)
		}

		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()

		content, err := io.ReadAll(io.LimitReader(f, cfg.maxFileSize))
		if err != nil {
			return "", err
		}

		if args.StartLine == 0 && args.EndLine == 0 {
			return string(content), nil
		}

		lines := strings.Split(string(content), "\n")
		start := args.StartLine
		if start < 1 {
			start = 1
		}
		if start > len(lines) {
			return "", fmt.Errorf("start_line %d is beyond file length (%d lines)", start, len(lines))
		}
		end := args.EndLine
		if end == 0 || end > len(lines) {
			end = len(lines)
		}
		if end < start {
			return "", fmt.Errorf("end_line (%d) must be >= start_line (%d)", end, start)
		}
		return strings.Join(lines[start-1:end], "\n"), nil
	})

	return Registration{Tool: t, Handler: handler}
}

// writeFileArgs defines arguments for the write file tool.
type writeFileArgs struct {
	Path    string `json:"path" desc:"The file path to write (will be created or overwritten)." required:"true"`
	Content string `json:"content" desc:"The content to write to the file." required:"true"`
}

// NewWriteFileTool creates a tool that overwrites (or creates) a file.
func NewWriteFileTool(opts ...FileToolOption) Registration {
	cfg := applyFileOpts(opts)

	t := ai.Tool{
		Name:        "write_file",
		Description: "Overwrite (or create) a file with the given content.",
		Parameters:  ai.MustSchemaFor[writeFileArgs](),
	}

	handler := typedHandler(func(ctx context.Context, args writeFileArgs) (string, error) {
		path, err := cfg.resolvePath(args.Path)
		if err != nil {
			return "", err
		}

		if int64(len(args.Content)) > cfg.maxFileSize {
			return "", fmt.Errorf("content size %d exceeds maximum %d", len(args.Content), cfg.maxFileSize)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(args.Content), 0o644); err != nil {
			return "", err
		}

		return fmt.Sprintf("Successfully wrote file %s", path), nil
	})

	return Registration{Tool: t, Handler: handler}
}

// TextEdit is a single unique text replacement within a file.
type TextEdit struct {
	OldText string `json:"old_text" desc:"The text to be replaced." required:"true"`
	NewText string `json:"new_text" desc:"The text to replace with." required:"true"`
}

// editFileArgs defines arguments for the edit file tool.
type editFileArgs struct {
	Path  string     `json:"path" desc:"The file to edit." required:"true"`
	Edits []TextEdit `json:"edits" desc:"A list of edit operations." required:"true"`
}

// NewEditFileTool creates a tool that applies unique text replacements to
// a file and returns a unified diff. Each old_text must occur exactly once
// in the content at the time it is applied; if any edit fails validation,
// no changes are written.
func NewEditFileTool(opts ...FileToolOption) Registration {
	cfg := applyFileOpts(opts)

	t := ai.Tool{
		Name:        "edit_file",
		Description: "Apply multiple unique text replacements to a file and return a unified diff.",
		Parameters:  ai.MustSchemaFor[editFileArgs](),
	}

	handler := typedHandler(func(ctx context.Context, args editFileArgs) (string, error) {
		path, err := cfg.resolvePath(args.Path)
		if err != nil {
			return "", err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		original := string(data)
		updated := original

		for _, edit := range args.Edits {
			switch strings.Count(updated, edit.OldText) {
			case 0:
				return "", fmt.Errorf("%q not found in %s; no changes made", edit.OldText, path)
			case 1:
				updated = strings.Replace(updated, edit.OldText, edit.NewText, 1)
			default:
				return "", fmt.Errorf("%q occurs multiple times in %s; edit is not unique", edit.OldText, path)
			}
		}

		if int64(len(updated)) > cfg.maxFileSize {
			return "", fmt.Errorf("resulting file size %d exceeds maximum %d", len(updated), cfg.maxFileSize)
		}

		if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
			return "", err
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(original),
			B:        difflib.SplitLines(updated),
			FromFile: path,
			ToFile:   path,
			Context:  3,
		})
		if err != nil {
			return "", err
		}
		return diff, nil
	})

	return Registration{Tool: t, Handler: handler}
}

// FileTools returns the read, write, and edit file tools.
func FileTools(opts ...FileToolOption) []Registration {
	return []Registration{
		NewReadFileTool(opts...),
		NewWriteFileTool(opts...),
		NewEditFileTool(opts...),
	}
}
