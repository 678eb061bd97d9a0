package update_day

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/days/models"
)

// UpdateDayRequest HTTP request model
type UpdateDayRequest struct {
	IsVisible *bool `json:"isVisible,omitempty"`
	IsWeekend *bool `json:"isWeekend,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateDayRequest) ToServiceRequest(userID int64, date time.Time) *models.UpdateDayRequest {
	return &models.UpdateDayRequest{
		UserID:    userID,
		Date:      date,
		IsVisible: r.IsVisible,
		IsWeekend: r.IsWeekend,
	}
}
