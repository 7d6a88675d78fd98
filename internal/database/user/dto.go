package user

import "github.com/advwell/scheduling-backend/internal/model"

type userDTO struct {
	ID       string
	TenantID string
	FullName string
	Email    string
	Role     string
	Active   bool
}

func mapToUser(dto *userDTO) *model.User {
	return &model.User{
		ID:       dto.ID,
		TenantID: dto.TenantID,
		FullName: dto.FullName,
		Email:    dto.Email,
		Role:     dto.Role,
		Active:   dto.Active,
	}
}
