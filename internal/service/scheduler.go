package service

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/haatos/provider-ci/internal/types"
)

func NewScheduler(location *time.Location) gocron.Scheduler {
	if location == nil {
		location = time.UTC
	}
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(location))
	if err != nil {
		log.Fatal(err)
	}
	return scheduler
}

// triggerJobDefinition maps a trigger to a weekly job when it names a
// weekday and to a daily job otherwise.
func triggerJobDefinition(t *types.Trigger) (gocron.JobDefinition, error) {
	at := gocron.NewAtTimes(gocron.NewAtTime(uint(t.Hour), uint(t.Minute), 0))
	if t.Weekday == "" {
		return gocron.DailyJob(1, at), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == t.Weekday {
			return gocron.WeeklyJob(1, gocron.NewWeekdays(d), at), nil
		}
	}
	return nil, fmt.Errorf("unknown weekday %q", t.Weekday)
}
