package service

import (
	"context"
	"time"

	"github.com/medtrack/medtrack/config"
	"github.com/medtrack/medtrack/database/model"
	"github.com/medtrack/medtrack/logger"
	"github.com/medtrack/medtrack/util/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/atomic"
	"gopkg.in/gomail.v2"
)

const (
	publishTimeout  = 5 * time.Second
	smtpSendTimeout = 10 * time.Second
)

// NotifyService delivers best-effort notifications over email and,
// optionally, an SNS topic. No failure here ever propagates to the caller
// as an error; the boolean result is the whole contract.
type NotifyService struct {
	emailEnabled bool
	smtpServer   string
	smtpPort     int
	sender       string
	password     string

	snsClient *sns.Client
	topicArn  string

	smtpTimeout time.Duration

	emailsSent   atomic.Int64
	emailsFailed atomic.Int64
	pushSent     atomic.Int64
	pushFailed   atomic.Int64
}

// NewNotifyService reads the notification config once. The SNS client is
// only constructed when the push channel is enabled and configured.
func NewNotifyService(ctx context.Context) *NotifyService {
	s := &NotifyService{
		emailEnabled: config.IsEmailEnabled(),
		smtpServer:   config.GetSMTPServer(),
		smtpPort:     config.GetSMTPPort(),
		sender:       config.GetSenderEmail(),
		password:     config.GetSenderPassword(),
		topicArn:     config.GetSNSTopicArn(),
		smtpTimeout:  smtpSendTimeout,
	}

	if config.IsSNSEnabled() && s.topicArn != "" && config.HasAWSCredentials() {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.GetAWSRegion()))
		if err != nil {
			logger.Error("sns init failed, push channel disabled:", err)
		} else {
			s.snsClient = sns.NewFromConfig(cfg)
		}
	}
	return s
}

// SendEmail delivers one message over a short-lived SMTP connection. With
// email disabled it logs the simulation and reports success, which keeps
// local development free of relay credentials.
func (s *NotifyService) SendEmail(to, subject, body string) bool {
	if !s.emailEnabled {
		logger.Infof("simulated email to %s: %s", to, subject)
		s.emailsSent.Inc()
		return true
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.smtpServer, s.smtpPort, s.sender, s.password)

	// gomail sets no dial or read deadline of its own, so the send runs
	// under a timeout here; a relay that never answers fails this one
	// delivery instead of wedging the request handler. The buffered
	// channel lets an abandoned dial goroutine finish in the background.
	errCh := make(chan error, 1)
	go func() {
		errCh <- d.DialAndSend(m)
	}()

	var err error
	select {
	case err = <-errCh:
	case <-time.After(s.smtpTimeout):
		err = common.NewErrorf("timed out after %s", s.smtpTimeout)
	}
	if err != nil {
		logger.Errorf("email to %s failed: %v", to, err)
		s.emailsFailed.Inc()
		return false
	}

	logger.Infof("email sent to %s", to)
	s.emailsSent.Inc()
	return true
}

// Publish fans the event out to the SNS topic. Failure here is independent
// of the email channel and never affects the caller's outcome.
func (s *NotifyService) Publish(ctx context.Context, subject, body string) bool {
	if s.snsClient == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	_, err := s.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(body),
	})
	if err != nil {
		logger.Error("sns publish failed:", err)
		s.pushFailed.Inc()
		return false
	}
	s.pushSent.Inc()
	return true
}

// NotifySignup sends the welcome message for a new account. The email
// channel's outcome is the overall result.
func (s *NotifyService) NotifySignup(ctx context.Context, user *model.User) bool {
	subject := "Welcome to MedTrack"
	body := "Hi " + user.Name + ", your " + string(user.Role) + " account has been created."
	s.Publish(ctx, subject, "new "+string(user.Role)+" signup")
	return s.SendEmail(user.Email, subject, body)
}

// NotifyLogin reports a successful login on both channels.
func (s *NotifyService) NotifyLogin(ctx context.Context, user *model.User) bool {
	subject := "MedTrack login"
	body := "Hi " + user.Name + ", you just signed in to your MedTrack account."
	s.Publish(ctx, subject, string(user.Role)+" login")
	return s.SendEmail(user.Email, subject, body)
}

// Stats returns the delivery counters: emails sent/failed, pushes
// sent/failed.
func (s *NotifyService) Stats() (int64, int64, int64, int64) {
	return s.emailsSent.Load(), s.emailsFailed.Load(), s.pushSent.Load(), s.pushFailed.Load()
}
