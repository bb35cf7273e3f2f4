package controller

import (
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

var exampleTexts = []struct {
	text      string
	completed bool
}{
	{"Welcome to your task list! 🎉", false},
	{"Press space to mark a task as done", false},
	{"Use e to edit and d to delete tasks", true},
}

func exampleTasks(now time.Time, newID func() string) []model.Task {
	out := make([]model.Task, 0, len(exampleTexts))
	for _, ex := range exampleTexts {
		out = append(out, model.Task{
			ID:        newID(),
			Text:      ex.text,
			Completed: ex.completed,
			CreatedAt: now,
		})
	}
	return out
}
