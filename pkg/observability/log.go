package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and HTTP events as debug log lines.
type LogHooks struct {
	logger *log.Logger
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnPackageStart(_ context.Context, pkg string) {
	h.logger.Debug("package started", "package", pkg)
}

func (h *LogHooks) OnPackageComplete(_ context.Context, pkg string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("package failed", "package", pkg, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("package done", "package", pkg, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnStageComplete(_ context.Context, pkg, stage string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed", "package", pkg, "stage", stage, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("stage done", "package", pkg, "stage", stage, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
