package domain

import "time"

// Task is a user-owned todo item. The owner is fixed at creation time; only
// title and completed are mutable through the API.
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Task) OwnedBy(userID int64) bool {
	return t != nil && t.UserID == userID
}
