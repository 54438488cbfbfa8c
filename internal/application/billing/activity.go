package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

func newActivity(companyID, userID, accountID, action, detail string, at time.Time) *entity.ActivityLog {
	return &entity.ActivityLog{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		AccountID: accountID,
		Action:    action,
		Detail:    detail,
		CreatedAt: at,
	}
}
