package controller

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

type fakeStore struct {
	data    map[string]string
	sets    int
	getErr  error
	setErr  error
	lastKey string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	s.lastKey = key
	s.data[key] = value
	return nil
}

type recordingRenderer struct {
	snapshots []Snapshot
}

func (r *recordingRenderer) Render(s Snapshot) {
	r.snapshots = append(r.snapshots, s)
}

func (r *recordingRenderer) last() Snapshot {
	return r.snapshots[len(r.snapshots)-1]
}

type scriptedConfirmer struct {
	answer  bool
	prompts []string
}

func (c *scriptedConfirmer) Ask(message string) bool {
	c.prompts = append(c.prompts, message)
	return c.answer
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

var fixedNow = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type harness struct {
	ctl     *Controller
	store   *fakeStore
	render  *recordingRenderer
	confirm *scriptedConfirmer
}

func newHarness(t *testing.T, store *fakeStore, opts ...Option) *harness {
	t.Helper()
	if store == nil {
		store = newFakeStore()
	}
	h := &harness{
		store:   store,
		render:  &recordingRenderer{},
		confirm: &scriptedConfirmer{answer: true},
	}
	base := []Option{
		WithConfirmer(h.confirm),
		WithRenderer(h.render),
		WithClock(fixedClock),
		WithIDGenerator(counterIDs()),
	}
	ctl, err := New(t.Context(), store, append(base, opts...)...)
	require.NoError(t, err)
	h.ctl = ctl
	return h
}

func texts(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}
