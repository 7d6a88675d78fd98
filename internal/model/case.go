package model

import "time"

type Case struct {
	ID                  string
	TenantID            string
	CaseNumber          string
	Subject             string
	Deadline            *time.Time
	DeadlineCompleted   bool
	DeadlineCompletedAt *time.Time
}
