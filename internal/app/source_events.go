package app

import (
	"context"
	"maps"
	"time"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/csync"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
)

// SourceState represents the lifecycle state of a monitored source.
type SourceState string

const (
	SourceStarting SourceState = "starting"
	SourceTailing  SourceState = "tailing"
	SourceWaiting  SourceState = "waiting"
	SourceError    SourceState = "error"
	SourceStopped  SourceState = "stopped"
)

// SourceEventType represents the type of source event.
type SourceEventType string

const (
	SourceEventStateChanged SourceEventType = "state_changed"
	SourceEventLinesChanged SourceEventType = "lines_changed"
)

// lineEventStride bounds subscriber traffic: a lines event goes out once
// per this many lines, the registry itself updates on every line.
const lineEventStride = 100

// SourceEvent represents a change in the source registry.
type SourceEvent struct {
	Type  SourceEventType
	Name  string
	State SourceState
	Error error
	Path  string
	Lines int
}

// SourceInfo holds the registry entry for one monitored source.
type SourceInfo struct {
	Name      string
	State     SourceState
	Error     error
	Path      string
	Lines     int
	StartedAt time.Time
}

// LogLine is one line read from a file source.
type LogLine struct {
	Source string
	Number int
	Text   string
	Time   time.Time
}

var (
	sourceStates = csync.NewVersionedMap[string, SourceInfo]()
	sourceBroker = pubsub.NewBroker[SourceEvent]()
	linesBroker  = pubsub.NewBroker[LogLine]()
)

// SubscribeSourceEvents returns a channel of source registry changes.
func SubscribeSourceEvents(ctx context.Context) <-chan pubsub.Event[SourceEvent] {
	return sourceBroker.Subscribe(ctx)
}

// SubscribeLogLines returns a channel of lines read from file sources.
func SubscribeLogLines(ctx context.Context) <-chan pubsub.Event[LogLine] {
	return linesBroker.Subscribe(ctx)
}

// GetSourceStates returns a snapshot of the source registry.
func GetSourceStates() map[string]SourceInfo {
	return maps.Collect(sourceStates.Seq2())
}

// GetSourceState returns the registry entry for a specific source.
func GetSourceState(name string) (SourceInfo, bool) {
	return sourceStates.Get(name)
}

// SourcesVersion increments whenever the registry changes; views key their
// caches off it.
func SourcesVersion() uint64 {
	return sourceStates.Version()
}

// updateSourceState updates the registry entry and publishes a state change
// event.
func updateSourceState(name string, state SourceState, err error, path string, lines int) {
	info, _ := sourceStates.Get(name)
	info.Name = name
	info.State = state
	info.Error = err
	if path != "" {
		info.Path = path
	}
	info.Lines = lines
	if state == SourceTailing && info.StartedAt.IsZero() {
		info.StartedAt = time.Now()
	}
	sourceStates.Set(name, info)

	sourceBroker.Publish(pubsub.UpdatedEvent, SourceEvent{
		Type:  SourceEventStateChanged,
		Name:  name,
		State: state,
		Error: err,
		Path:  info.Path,
		Lines: lines,
	})
}

// updateSourceLines bumps the line counter for a source.
func updateSourceLines(name string, lines int) {
	info, ok := sourceStates.Get(name)
	if !ok {
		return
	}
	info.Lines = lines
	sourceStates.Set(name, info)

	if lines%lineEventStride == 0 {
		sourceBroker.Publish(pubsub.UpdatedEvent, SourceEvent{
			Type:  SourceEventLinesChanged,
			Name:  name,
			State: info.State,
			Path:  info.Path,
			Lines: lines,
		})
	}
}

// publishLogLine fans a line out to subscribers.
func publishLogLine(line LogLine) {
	linesBroker.Publish(pubsub.CreatedEvent, line)
}
