// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/mock-ballot/models"
)

// View renders what the session tells it. Calls arrive while the session is
// locked, so implementations must not call back into the Session.
type View interface {
	ShowStage(stage models.Stage)
	Notify(msg models.Message)
	RenderResults(r models.Results)
}

// Views fans every call out to each view in order.
type Views []View

func (vs Views) ShowStage(stage models.Stage) {
	for _, v := range vs {
		v.ShowStage(stage)
	}
}

func (vs Views) Notify(msg models.Message) {
	for _, v := range vs {
		v.Notify(msg)
	}
}

func (vs Views) RenderResults(r models.Results) {
	for _, v := range vs {
		v.RenderResults(r)
	}
}

// LogView writes view events to a structured logger, slog.Default if nil.
type LogView struct {
	Logger *slog.Logger
}

func (v LogView) logger() *slog.Logger {
	if v.Logger == nil {
		return slog.Default()
	}
	return v.Logger
}

func (v LogView) ShowStage(stage models.Stage) {
	v.logger().Info("stage shown", "stage", stage)
}

func (v LogView) Notify(msg models.Message) {
	level := slog.LevelInfo
	switch msg.Severity {
	case models.SeverityWarning:
		level = slog.LevelWarn
	case models.SeverityDanger:
		level = slog.LevelError
	}
	v.logger().Log(context.Background(), level, "view message", "severity", msg.Severity, "text", msg.Text)
}

func (v LogView) RenderResults(r models.Results) {
	v.logger().Info("results rendered", "labels", r.Labels, "counts", r.Counts, "total", r.Total)
}

type nopView struct{}

func (nopView) ShowStage(models.Stage) {}
func (nopView) Notify(models.Message) {}
func (nopView) RenderResults(models.Results) {}
