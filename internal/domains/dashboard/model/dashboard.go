package model

import (
	"fmt"
	"time"
)

type Stats struct {
	Artists   int64 `json:"artists"`
	Galleries int64 `json:"galleries"`
	Kols      int64 `json:"kols"`
	Teams     int64 `json:"teams"`
	Pets      int64 `json:"pets"`
	Projects  int64 `json:"projects"`
}

// Activity is one "created" event shown on the admin dashboard.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Action    string    `json:"action"`
	Name      string    `json:"name"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	ActionCreated = "created"

	MaxActivities   = 10
	RecentPerSource = 5
)

// TimeAgo renders the age of t at now using the largest whole unit.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d >= 24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d >= time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	}
	return "Just now"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
