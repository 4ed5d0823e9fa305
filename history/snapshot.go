package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	ai "github.com/spetersoncode/forge"
)

const (
	stateDirName       = ".forge"
	historyDirName     = "history"
	summariesFileName  = "summaries.json"
	snapshotTimeLayout = "20060102_150405"
)

// Snapshot is a persisted conversation: the transcript plus enough metadata
// to resume the run that produced it.
type Snapshot struct {
	AgentName string       `json:"agentName"`
	Model     string       `json:"model"`
	CreatedAt time.Time    `json:"createdAt"`
	Messages  []ai.Message `json:"messages"`
}

// Transcript returns a transcript seeded from the snapshot. Loading a
// snapshot resumes the conversation as-is; the start message is already in
// the persisted messages and must not be re-seeded.
func (s *Snapshot) Transcript() *Transcript {
	return New(s.Messages...)
}

// Store persists snapshots and shorten summaries under a project-local
// state directory (<root>/.forge).
type Store struct {
	root string
}

// NewStore returns a store rooted at the given project directory.
func NewStore(projectDir string) *Store {
	return &Store{root: filepath.Join(projectDir, stateDirName)}
}

func (s *Store) historyDir() string {
	return filepath.Join(s.root, historyDirName)
}

// Save writes a snapshot of the transcript to a timestamped file and
// returns its path. Trailing assistant messages with unanswered tool calls
// are dropped before writing so the saved conversation always resumes
// cleanly.
func (s *Store) Save(agentName, model string, t *Transcript) (string, error) {
	clone := New(t.Messages()...)
	clone.Sanitize()
	if clone.Len() == 0 {
		return "", fmt.Errorf("history: refusing to save empty transcript")
	}

	snap := Snapshot{
		AgentName: agentName,
		Model:     model,
		CreatedAt: time.Now(),
		Messages:  clone.Messages(),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("history: marshal snapshot: %w", err)
	}

	dir := s.historyDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("history: create history dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("history_%s.json", snap.CreatedAt.Format(snapshotTimeLayout)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("history: write snapshot: %w", err)
	}
	return path, nil
}

// Load reads a snapshot from the given path.
func (s *Store) Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("history: read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("history: parse snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// Latest loads the most recent snapshot, or returns nil when none exist.
func (s *Store) Latest() (*Snapshot, error) {
	files, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return s.Load(files[len(files)-1])
}

// List returns all snapshot paths sorted oldest first. The timestamped file
// names sort chronologically.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.historyDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: list snapshots: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".json" {
			files = append(files, filepath.Join(s.historyDir(), name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Clear removes all saved snapshots.
func (s *Store) Clear() error {
	files, err := s.List()
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("history: remove snapshot: %w", err)
		}
	}
	return nil
}

// TrimFiles deletes all but the newest keep snapshots.
func (s *Store) TrimFiles(keep int) error {
	if keep < 0 {
		keep = 0
	}
	files, err := s.List()
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}
	for _, path := range files[:len(files)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("history: remove snapshot: %w", err)
		}
	}
	return nil
}

type summariesFile struct {
	Summaries []string `json:"summaries"`
}

// Summaries returns the accumulated shorten summaries for the project.
func (s *Store) Summaries() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, summariesFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: read summaries: %w", err)
	}
	var f summariesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("history: parse summaries: %w", err)
	}
	return f.Summaries, nil
}

// AppendSummary records a shorten summary so later sessions can surface
// prior context.
func (s *Store) AppendSummary(summary string) error {
	summaries, err := s.Summaries()
	if err != nil {
		return err
	}
	summaries = append(summaries, summary)
	data, err := json.MarshalIndent(summariesFile{Summaries: summaries}, "", "  ")
	if err != nil {
		return fmt.Errorf("history: marshal summaries: %w", err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("history: create state dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, summariesFileName), data, 0o644); err != nil {
		return fmt.Errorf("history: write summaries: %w", err)
	}
	return nil
}
