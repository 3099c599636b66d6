package notification

import (
	"context"
	"sync"
	"time"

	"github.com/klokku/pennywise/internal/event_bus"
	"github.com/klokku/pennywise/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Severity string

const (
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

type Notice struct {
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier receives human-readable status messages. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string)
}

const DefaultHistory = 50

// Feed keeps the most recent notices for the presentation layer to poll and re-publishes them on the event bus.
type Feed struct {
	mu       sync.Mutex
	history  int
	notices  []Notice
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewFeed(history int, eventBus *event_bus.EventBus, clock utils.Clock) *Feed {
	if history <= 0 {
		history = DefaultHistory
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &Feed{history: history, eventBus: eventBus, clock: clock}
}

func (f *Feed) Notify(ctx context.Context, severity Severity, message string) {
	notice := Notice{Severity: severity, Message: message, CreatedAt: f.clock.Now()}

	switch severity {
	case Error:
		log.Errorf("notification: %s", message)
	case Warning:
		log.Warnf("notification: %s", message)
	default:
		log.Infof("notification: %s", message)
	}

	f.mu.Lock()
	f.notices = append(f.notices, notice)
	if len(f.notices) > f.history {
		f.notices = f.notices[len(f.notices)-f.history:]
	}
	f.mu.Unlock()

	if f.eventBus != nil {
		if err := f.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.NotificationPosted, notice)); err != nil {
			log.Warnf("failed to publish notification: %v", err)
		}
	}
}

// Recent returns the kept notices, newest first.
func (f *Feed) Recent() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]Notice, 0, len(f.notices))
	for i := len(f.notices) - 1; i >= 0; i-- {
		result = append(result, f.notices[i])
	}
	return result
}

func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = nil
}

// Recorder is a Notifier that only remembers what it was told. Useful where no feed is wired.
type Recorder struct {
	mu      sync.Mutex
	Notices []Notice
}

func (r *Recorder) Notify(_ context.Context, severity Severity, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = append(r.Notices, Notice{Severity: severity, Message: message})
}

func (r *Recorder) Count(severity Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.Notices {
		if n.Severity == severity {
			count++
		}
	}
	return count
}

func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notices) == 0 {
		return Notice{}, false
	}
	return r.Notices[len(r.Notices)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = nil
}
