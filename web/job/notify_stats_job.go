package job

import (
	"github.com/medtrack/medtrack/logger"
	"github.com/medtrack/medtrack/web/service"
)

// NotifyStatsJob flushes the notification delivery counters to the log.
type NotifyStatsJob struct {
	notifyService *service.NotifyService
}

func NewNotifyStatsJob(notifyService *service.NotifyService) *NotifyStatsJob {
	return &NotifyStatsJob{notifyService: notifyService}
}

func (j *NotifyStatsJob) Run() {
	emailsSent, emailsFailed, pushSent, pushFailed := j.notifyService.Stats()
	if emailsSent+emailsFailed+pushSent+pushFailed == 0 {
		return
	}
	logger.Infof("notifications: %d emails sent, %d failed; %d pushes sent, %d failed",
		emailsSent, emailsFailed, pushSent, pushFailed)
}
