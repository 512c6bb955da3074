package usecase

import (
	"math/rand"
	"sync"
	"time"

	"github.com/studibuch/riona/config"
	domainPlan "github.com/studibuch/riona/domains/plan"
)

// Scheduler computes posting timestamps for new posts. Placement is random:
// a day 1-14 days out, an hour from the weekday/weekend active-hours set and
// a random minute. It deliberately does not consult existing plan entries,
// so it enforces no minimum spacing; PostsPerDay and MinTimeBetweenPosts in
// the settings are reserved, not load-bearing.
type Scheduler struct {
	settings *config.Settings
	now      func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewScheduler(settings *config.Settings) *Scheduler {
	return &Scheduler{
		settings: settings,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ComputeScheduledTime returns manual verbatim when given; validation of a
// manual date is the caller's concern.
func (s *Scheduler) ComputeScheduledTime(manual *time.Time) time.Time {
	if manual != nil {
		return *manual
	}

	s.mu.Lock()
	daysAhead := s.rng.Intn(14) + 1
	hourPick := s.rng.Float64()
	minute := s.rng.Intn(60)
	s.mu.Unlock()

	day := s.now().AddDate(0, 0, daysAhead)

	hours := s.settings.Posting().ActiveHours.Weekdays
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		hours = s.settings.Posting().ActiveHours.Weekends
	}
	hour := hours[int(hourPick*float64(len(hours)))%len(hours)]

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// MergeNewArticlePosts returns the candidates whose SourceURL is not yet
// present among article posts in current, preserving candidate order.
// Re-running the same candidate set against an already merged plan returns
// nothing.
func MergeNewArticlePosts(current domainPlan.ContentPlan, candidates []domainPlan.Post) []domainPlan.Post {
	existing := make(map[string]struct{})
	for _, p := range current {
		if p.Kind == domainPlan.KindArticle && p.SourceURL != "" {
			existing[p.SourceURL] = struct{}{}
		}
	}

	var toAdd []domainPlan.Post
	for _, c := range candidates {
		if _, dup := existing[c.SourceURL]; dup {
			continue
		}
		toAdd = append(toAdd, c)
	}
	return toAdd
}
