package config

import (
	"fmt"
	"time"
)

const (
	SchedulerOff      = "off"
	SchedulerInterval = "interval"
	SchedulerAsynq    = "asynq"
)

type Scheduler struct {
	Mode     string        `env:"SCHEDULER_MODE" envDefault:"interval"`
	Interval time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"24h"`
	Cron     string        `env:"SCHEDULER_CRON" envDefault:"0 9 * * *"`
	Timezone string        `env:"SCHEDULER_TZ" envDefault:"UTC"`
}

func (s Scheduler) Validate() error {
	switch s.Mode {
	case SchedulerOff, SchedulerAsynq:
		return nil
	case SchedulerInterval:
		if s.Interval <= 0 {
			return fmt.Errorf("SCHEDULER_INTERVAL must be positive, got %s", s.Interval)
		}

		return nil
	default:
		return fmt.Errorf("unknown SCHEDULER_MODE %q", s.Mode)
	}
}

func (s Scheduler) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation: %w", err)
	}

	return loc, nil
}
