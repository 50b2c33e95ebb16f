// Package config exposes the process configuration for the MedTrack panel.
// Everything is environment-backed with defaults suitable for local
// development; the embedded name and version identify the build.
package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("MEDTRACK_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("MEDTRACK_DEBUG") == "true"
}

// GetLogFolder returns the directory for the file log backend.
// File logging is disabled when unset.
func GetLogFolder() string {
	return os.Getenv("MEDTRACK_LOG_FOLDER")
}

func GetListen() string {
	return os.Getenv("MEDTRACK_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("MEDTRACK_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 8080
	}
	return port
}

// GetSessionSecret returns the session signing secret. Empty means the
// operator supplied none and the caller should fall back to a random
// per-process secret, invalidating all sessions on restart.
func GetSessionSecret() string {
	return os.Getenv("SECRET_KEY")
}

// GetSessionLifetime returns the absolute session TTL, default one hour.
func GetSessionLifetime() time.Duration {
	d, err := time.ParseDuration(os.Getenv("SESSION_LIFETIME"))
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

func GetAWSRegion() string {
	region := os.Getenv("AWS_REGION_NAME")
	if region == "" {
		return "ap-south-1"
	}
	return region
}

func GetUsersTableName() string {
	table := os.Getenv("USERS_TABLE_NAME")
	if table == "" {
		return "MedTrackUsers"
	}
	return table
}

// HasAWSCredentials reports whether the remote user store should be used.
// Absence of credentials switches the process to the in-memory fallback.
func HasAWSCredentials() bool {
	return os.Getenv("AWS_ACCESS_KEY_ID") != ""
}

func GetSMTPServer() string {
	server := os.Getenv("SMTP_SERVER")
	if server == "" {
		return "smtp.gmail.com"
	}
	return server
}

func GetSMTPPort() int {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		return 587
	}
	return port
}

func GetSenderEmail() string {
	return os.Getenv("SENDER_EMAIL")
}

func GetSenderPassword() string {
	return os.Getenv("SENDER_PASSWORD")
}

func IsEmailEnabled() bool {
	return strings.EqualFold(os.Getenv("ENABLE_EMAIL"), "true")
}

func IsSNSEnabled() bool {
	return strings.EqualFold(os.Getenv("ENABLE_SNS"), "true")
}

func GetSNSTopicArn() string {
	return os.Getenv("SNS_TOPIC_ARN")
}
