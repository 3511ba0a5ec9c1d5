package models

import "time"

// ScheduleDay is one row of a doctor's slots grouped by calendar date.
type ScheduleDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// ScheduleDaySummary is the presentation form of a ScheduleDay row.
type ScheduleDaySummary struct {
	Date         string `json:"date"`
	Count        int    `json:"count"`
	DisplayTitle string `json:"display_title"`
}
