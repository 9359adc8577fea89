// Package feed produces the deployment and alert event stream shown on the
// dashboard.
package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/csync"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
)

// Kind classifies a feed item.
type Kind string

const (
	KindDeploy   Kind = "deploy"
	KindAlert    Kind = "alert"
	KindIncident Kind = "incident"
	KindScale    Kind = "scale"
	KindRollback Kind = "rollback"
)

// Item is one event on the feed.
type Item struct {
	ID        string
	Kind      Kind
	Service   string
	Env       string
	Message   string
	CreatedAt time.Time
}

// Service accumulates feed items and publishes one created event per new
// item.
type Service interface {
	pubsub.Subscriber[Item]

	// Seed replaces the stored items without publishing events. Used at
	// startup so subscribers are not flooded with history.
	Seed(items []Item)
	// Append records items and publishes a created event for each.
	Append(items ...Item)
	// Get returns the item at index.
	Get(index int) (Item, bool)
	Len() int
	// Start emits a synthetic item every interval until ctx is done. It
	// gives the feed motion when no real pipeline is attached.
	Start(ctx context.Context, interval time.Duration)
	Shutdown()
}

type service struct {
	*pubsub.Broker[Item]
	items *csync.Slice[Item]
}

var _ pubsub.Publisher[Item] = (*service)(nil)

func NewService() Service {
	return &service{
		Broker: pubsub.NewBroker[Item](),
		items:  csync.NewSlice[Item](),
	}
}

func (s *service) Seed(items []Item) {
	s.items.SetSlice(items)
}

func (s *service) Append(items ...Item) {
	s.items.Append(items...)
	for _, item := range items {
		s.Publish(pubsub.CreatedEvent, item)
	}
}

func (s *service) Get(index int) (Item, bool) {
	return s.items.Get(index)
}

func (s *service) Len() int {
	return s.items.Len()
}

func (s *service) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		slog.Debug("feed generator started", "interval", interval)
		for {
			select {
			case <-ctx.Done():
				slog.Debug("feed generator stopped")
				return
			case now := <-ticker.C:
				s.Append(synthesize(now))
			}
		}
	}()
}
