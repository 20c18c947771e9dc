// Package notify emits the "invalidate cached view" and "navigate" signals a
// successful mutation hands to the presentation layer.
package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	KindRevalidate = "revalidate"
	KindNavigate   = "navigate"
)

// Signal is an opaque notification for the presentation layer.
type Signal struct {
	Kind string    `json:"kind"`
	Path string    `json:"path"`
	At   time.Time `json:"at"`
}

// Notifier is what mutations call after a successful write.
type Notifier interface {
	Revalidate(ctx context.Context, path string)
	Navigate(ctx context.Context, path string)
}

// Publisher fans a signal out to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, signal Signal) error
}

// Dispatcher records signals on the request and forwards them to a Publisher.
// Publish failures never fail the mutation.
type Dispatcher struct {
	publisher Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewDispatcher(publisher Publisher, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		log:       log.Named("notify"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (d *Dispatcher) Revalidate(ctx context.Context, path string) {
	d.emit(ctx, KindRevalidate, path)
}

func (d *Dispatcher) Navigate(ctx context.Context, path string) {
	d.emit(ctx, KindNavigate, path)
}

func (d *Dispatcher) emit(ctx context.Context, kind, path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	signal := Signal{Kind: kind, Path: path, At: d.now()}

	if rec := RecorderFromContext(ctx); rec != nil {
		rec.record(signal)
	}
	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, signal); err != nil {
		d.log.Warn("publish signal failed",
			zap.String("kind", kind),
			zap.String("path", path),
			zap.Error(err),
		)
	}
}

type recorderKey struct{}

// Recorder captures the signals emitted while serving one request.
type Recorder struct {
	mu          sync.Mutex
	revalidated []string
	navigate    string
}

// WithRecorder attaches a fresh Recorder to ctx.
func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	rec := &Recorder{}
	return context.WithValue(ctx, recorderKey{}, rec), rec
}

func RecorderFromContext(ctx context.Context) *Recorder {
	if ctx == nil {
		return nil
	}
	rec, _ := ctx.Value(recorderKey{}).(*Recorder)
	return rec
}

func (r *Recorder) record(signal Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch signal.Kind {
	case KindRevalidate:
		r.revalidated = append(r.revalidated, signal.Path)
	case KindNavigate:
		r.navigate = signal.Path
	}
}

// Revalidated returns the invalidated paths in emission order.
func (r *Recorder) Revalidated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.revalidated))
	copy(out, r.revalidated)
	return out
}

// NavigateTo returns the last navigation target, if any.
func (r *Recorder) NavigateTo() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.navigate, r.navigate != ""
}

var _ Notifier = (*Dispatcher)(nil)
