// Package observability lets callers watch port generation without the
// pipeline depending on a particular logger or metrics backend.
//
// The pipeline and the registry client report to whatever hooks are
// installed; by default these are no-ops. The CLI installs [LogHooks] under
// --verbose:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//	defer observability.Reset()
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from port generation.
type PipelineHooks interface {
	OnPackageStart(ctx context.Context, pkg string)
	OnPackageComplete(ctx context.Context, pkg string, duration time.Duration, err error)

	// OnStageComplete records one step of a package ("fetch", "describe",
	// "makesum", "extract", "license", "regenerate").
	OnStageComplete(ctx context.Context, pkg, stage string, duration time.Duration, err error)
}

// HTTPHooks receives events from registry requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure; HTTP error statuses arrive
	// through OnResponse.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks ignores every event. Embed it to implement only some
// of the methods.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnPackageStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnPackageComplete(context.Context, string, time.Duration, error)       {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, string, time.Duration, error) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registry is replaced as a whole, so readers never see a torn update.
type registry struct {
	pipeline PipelineHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() {
	current.Store(&registry{pipeline: NoopPipelineHooks{}, http: NoopHTTPHooks{}})
}
