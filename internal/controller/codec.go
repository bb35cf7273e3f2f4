package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type taskRecord struct {
	ID        recordID  `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// recordID accepts both string ids and the numeric ids written by the
// browser version of the list.
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = recordID(n.String())
	return nil
}

// EncodeTasks serializes the collection in order.
func EncodeTasks(tasks []model.Task) (string, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, taskRecord{
			ID:        recordID(t.ID),
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt,
		})
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// DecodeTasks parses a stored blob. Records that fail Task.Validate, and
// later records whose id repeats an earlier one, are dropped and their ids
// reported in dropped.
func DecodeTasks(raw string) (tasks []model.Task, dropped []string, err error) {
	var records []taskRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, nil, fmt.Errorf("decode tasks: %w", err)
	}
	tasks = make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		task := model.Task{
			ID:        string(r.ID),
			Text:      r.Text,
			Completed: r.Completed,
			CreatedAt: r.CreatedAt,
		}
		if task.Validate() != nil || seen[task.ID] {
			dropped = append(dropped, task.ID)
			continue
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks, dropped, nil
}
