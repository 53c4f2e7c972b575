package agent

// Tool names — the entire action surface offered to the model.
const (
	ToolAddTask      = "add_task"
	ToolListTasks    = "list_tasks"
	ToolCompleteTask = "complete_task"
	ToolDeleteTask   = "delete_task"
	ToolUpdateTask   = "update_task"
)

// userIDProperty appears in every schema so the model knows the parameter
// exists, but the dispatcher always replaces its value with the
// authenticated caller's identity.
var userIDProperty = map[string]any{
	"type":        "string",
	"description": "User UUID of the task owner",
}

// toolDefinitions returns the declared tool set sent with every model call.
func toolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolAddTask,
			Description: "Create a new task for the user. Use this when the user wants to add, create, or remember something.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"user_id": userIDProperty,
					"title": map[string]any{
						"type":        "string",
						"description": "Task title (1-500 characters)",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Optional additional details about the task (max 5000 characters)",
					},
				},
				"required": []string{"user_id", "title"},
			},
		},
		{
			Name:        ToolListTasks,
			Description: "Retrieve the user's tasks with optional filtering by completion status. Use this when the user wants to see their tasks.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"user_id": userIDProperty,
					"status": map[string]any{
						"type":        "string",
						"enum":        []string{"all", "pending", "completed"},
						"description": "Filter tasks by completion status",
					},
				},
				"required": []string{"user_id"},
			},
		},
		{
			Name:        ToolCompleteTask,
			Description: "Mark a task as completed. Use this when the user indicates they've finished a task.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"user_id": userIDProperty,
					"task_id": map[string]any{
						"type":        "string",
						"description": "ID of the task to mark as completed",
					},
				},
				"required": []string{"user_id", "task_id"},
			},
		},
		{
			Name:        ToolDeleteTask,
			Description: "Permanently delete a task. Use this when the user wants to remove a task.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"user_id": userIDProperty,
					"task_id": map[string]any{
						"type":        "string",
						"description": "ID of the task to delete",
					},
				},
				"required": []string{"user_id", "task_id"},
			},
		},
		{
			Name:        ToolUpdateTask,
			Description: "Update an existing task's title, description, or priority. Use this when the user wants to modify task details.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"user_id": userIDProperty,
					"task_id": map[string]any{
						"type":        "string",
						"description": "ID of the task to update",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "New task title (optional)",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "New task description (optional, empty string to clear)",
					},
					"priority": map[string]any{
						"type":        "string",
						"enum":        []string{"low", "medium", "high"},
						"description": "New priority level (optional)",
					},
				},
				"required": []string{"user_id", "task_id"},
			},
		},
	}
}
