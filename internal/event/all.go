package event

import (
	"time"
)

var appStartTime time.Time

func AppInitialized() {
	appStartTime = time.Now()
	send("app initialized")
}

func AppExited() {
	duration := time.Since(appStartTime).Truncate(time.Second)
	send(
		"app exited",
		"app duration pretty", duration.String(),
		"app duration in seconds", int64(duration.Seconds()),
	)
	Flush()
}

func FeedBatchLoaded(props ...any) {
	send(
		"feed batch loaded",
		props...,
	)
}

func LogsOpened(props ...any) {
	send(
		"logs opened",
		props...,
	)
}

// FilterUsed reports that the filter input was committed. The query text
// itself is never sent.
func FilterUsed() {
	send("filter used")
}

func PanelSwitched() {
	send("panel switched")
}
