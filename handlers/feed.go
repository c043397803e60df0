// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sync"

	"github.com/danielhkuo/mock-ballot/models"
)

// Feed is the session's view for HTTP clients. It keeps the last rendered
// results so responses can carry them.
type Feed struct {
	mu      sync.Mutex
	results models.Results
}

func NewFeed() *Feed {
	return &Feed{}
}

// ShowStage is a no-op; responses read the stage from the session itself.
func (f *Feed) ShowStage(models.Stage) {}

// Notify is a no-op; the session snapshots its latest message with the stage.
func (f *Feed) Notify(models.Message) {}

func (f *Feed) RenderResults(r models.Results) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = r
}

func (f *Feed) Results() models.Results {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results
}
