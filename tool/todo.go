package tool

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Todo is a single item on the agent's working list.
type Todo struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TodoManager holds the agent's working todo list for one session.
// It is safe for concurrent use.
type TodoManager struct {
	mu     sync.Mutex
	todos  []*Todo
	nextID int
}

// NewTodoManager creates an empty todo list.
func NewTodoManager() *TodoManager {
	return &TodoManager{nextID: 1}
}

// Add appends a new item and returns it.
func (m *TodoManager) Add(description string) *Todo {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo := &Todo{ID: m.nextID, Description: description}
	m.todos = append(m.todos, todo)
	m.nextID++
	return todo
}

// Complete marks the item with the given ID as done.
// Returns the item, or nil if no item has that ID.
func (m *TodoManager) Complete(id int) *Todo {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.todos {
		if t.ID == id {
			t.Completed = true
			return t
		}
	}
	return nil
}

// Format renders the list as a markdown task list.
func (m *TodoManager) Format() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lines []string
	for _, t := range m.todos {
		box := " "
		if t.Completed {
			box = "x"
		}
		lines = append(lines, fmt.Sprintf("- [%s] %d: %s", box, t.ID, t.Description))
	}
	return strings.Join(lines, "\n")
}

type todoAddArgs struct {
	Descriptions []string `json:"descriptions" desc:"The TODO items to add." required:"true"`
}

type todoCompleteArgs struct {
	TaskID int `json:"task_id" desc:"The ID of the TODO item to complete." required:"true"`
}

type todoListArgs struct{}

// TodoTools returns add/complete/list tools sharing one manager.
func TodoTools(m *TodoManager) []Registration {
	return []Registration{
		Func("todo_add",
			"Add one or more TODO items, then show the list as a markdown task list.",
			func(ctx context.Context, args todoAddArgs) (string, error) {
				for _, desc := range args.Descriptions {
					if desc == "" {
						return "", fmt.Errorf("description must not be empty")
					}
					m.Add(desc)
				}
				return m.Format(), nil
			}),
		Func("todo_complete",
			"Mark a TODO item as completed by its ID, then show remaining items as a markdown task list.",
			func(ctx context.Context, args todoCompleteArgs) (string, error) {
				var b strings.Builder
				if todo := m.Complete(args.TaskID); todo != nil {
					fmt.Fprintf(&b, "Completed TODO %d: %s\n", args.TaskID, todo.Description)
				} else {
					fmt.Fprintf(&b, "TODO %d not found\n", args.TaskID)
				}
				b.WriteString("\n")
				b.WriteString(m.Format())
				return b.String(), nil
			}),
		Func("todo_list",
			"List all TODO items, rendered as a markdown task list.",
			func(ctx context.Context, args todoListArgs) (string, error) {
				return m.Format(), nil
			}),
	}
}
