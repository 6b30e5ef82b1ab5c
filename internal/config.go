package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerName string `env:"SERVER_NAME,required=true"`
	ServerID   string `env:"SERVER_ID,required=true"`

	// MeetingDays is a comma-separated list of weekday numbers, 0 = Sunday.
	MeetingDays string `env:"MEETING_DAYS,required=true"`
	// DefaultTimes is a comma-separated list of HH:MM slot labels.
	DefaultTimes string `env:"DEFAULT_TIMES,required=true"`

	TopicVotingWindow time.Duration `env:"TOPIC_VOTING_WINDOW,required=true"`
	TimeVotingWindow  time.Duration `env:"TIME_VOTING_WINDOW,required=true"`
	AllowLateVotes    bool          `env:"ALLOW_LATE_VOTES"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,required=true"`
	DebugPort      int    `env:"DEBUG_PORT"`
}

// MeetingWeekdays parses the MEETING_DAYS list. Numbers follow time.Weekday
// (0 = Sunday), matching what the server config screen stores.
func MeetingWeekdays(csv string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("MEETING_DAYS must contain weekday numbers 0-6, got %q", part)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}

var timeLabel = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// TimeLabels parses the DEFAULT_TIMES list and validates each label is a
// 24h HH:MM time.
func TimeLabels(csv string) ([]string, error) {
	var labels []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if !timeLabel.MatchString(part) {
			return nil, fmt.Errorf("DEFAULT_TIMES must contain HH:MM labels, got %q", part)
		}
		labels = append(labels, part)
	}
	return labels, nil
}
