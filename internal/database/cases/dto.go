package cases

import (
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
)

type caseDTO struct {
	ID                  string
	TenantID            string
	CaseNumber          string
	Subject             string
	Deadline            *time.Time
	DeadlineCompleted   bool
	DeadlineCompletedAt *time.Time
}

func mapToCase(dto *caseDTO) *model.Case {
	return &model.Case{
		ID:                  dto.ID,
		TenantID:            dto.TenantID,
		CaseNumber:          dto.CaseNumber,
		Subject:             dto.Subject,
		Deadline:            dto.Deadline,
		DeadlineCompleted:   dto.DeadlineCompleted,
		DeadlineCompletedAt: dto.DeadlineCompletedAt,
	}
}
