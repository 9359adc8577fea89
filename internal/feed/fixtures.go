package feed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

var (
	kinds        = []Kind{KindDeploy, KindAlert, KindIncident, KindScale, KindRollback}
	serviceNames = []string{"api", "web", "worker", "billing", "auth", "search", "ingest"}
	envs         = []string{"prod", "staging", "dev"}
)

// Fixtures builds n synthetic feed items, oldest first. Content is
// deterministic apart from the IDs, so views stay stable across runs.
func Fixtures(n int) []Item {
	r := rand.New(rand.NewPCG(7, 42))
	now := time.Now()
	items := make([]Item, 0, n)
	for i := range n {
		kind := kinds[r.IntN(len(kinds))]
		service := serviceNames[r.IntN(len(serviceNames))]
		env := envs[r.IntN(len(envs))]
		items = append(items, Item{
			ID:        uuid.NewString(),
			Kind:      kind,
			Service:   service,
			Env:       env,
			Message:   message(r, kind, service),
			CreatedAt: now.Add(-time.Duration(n-i) * time.Minute),
		})
	}
	return items
}

// synthesize builds one live item stamped at now.
func synthesize(now time.Time) Item {
	r := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
	kind := kinds[r.IntN(len(kinds))]
	service := serviceNames[r.IntN(len(serviceNames))]
	return Item{
		ID:        uuid.NewString(),
		Kind:      kind,
		Service:   service,
		Env:       envs[r.IntN(len(envs))],
		Message:   message(r, kind, service),
		CreatedAt: now,
	}
}

func message(r *rand.Rand, kind Kind, service string) string {
	switch kind {
	case KindDeploy:
		return fmt.Sprintf("deployed %s v1.%d.%d", service, r.IntN(30), r.IntN(10))
	case KindAlert:
		return fmt.Sprintf("high error rate on %s (%d%% over 5m)", service, 1+r.IntN(40))
	case KindIncident:
		return fmt.Sprintf("incident opened for %s: elevated p99 latency", service)
	case KindScale:
		return fmt.Sprintf("scaled %s to %d replicas", service, 2+r.IntN(18))
	case KindRollback:
		return fmt.Sprintf("rolled back %s to previous release", service)
	default:
		return fmt.Sprintf("event on %s", service)
	}
}
