package transport

import (
	"time"

	"github.com/taskgo/backend/domain"
)

// TaskView is the "tasks" serialization group: the only task fields exposed
// on the wire, in this order. The user field is the owner's id.
type TaskView struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	User      int64     `json:"user"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewTaskView(task domain.Task) TaskView {
	return TaskView{
		ID:        task.ID,
		Title:     task.Title,
		User:      task.UserID,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// NewTaskList renders tasks as views. The slice is never nil so that empty
// results serialize as [] rather than null.
func NewTaskList(tasks []domain.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, NewTaskView(task))
	}
	return views
}
