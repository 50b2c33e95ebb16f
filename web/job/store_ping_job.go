// Package job contains the background jobs run by the web server's cron
// scheduler.
package job

import (
	"context"
	"time"

	"github.com/medtrack/medtrack/database"
	"github.com/medtrack/medtrack/logger"
	"github.com/medtrack/medtrack/util/common"
)

// StorePingJob probes the user store and logs reachability transitions, so
// a flapping DynamoDB connection shows up in the log once per transition
// instead of once per request.
type StorePingJob struct {
	store database.UserStore

	down bool
}

func NewStorePingJob(store database.UserStore) *StorePingJob {
	return &StorePingJob{store: store}
}

func (j *StorePingJob) Run() {
	defer common.Recover("store ping job")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := j.store.Ping(ctx)
	switch {
	case err != nil && !j.down:
		j.down = true
		logger.Error("user store unreachable:", err)
	case err == nil && j.down:
		j.down = false
		logger.Info("user store reachable again")
	}
}
