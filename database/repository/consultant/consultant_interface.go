package consultant

import "consultly/models"

// ConsultantRepository persists consultant profiles and their weekly windows.
type ConsultantRepository interface {
	Create(consultant models.Consultant) error
	GetByID(id string) (*models.Consultant, error)
	ReplaceWindows(id string, windows []models.WeeklyWindow) error
	SetActive(id string, active bool) error
	Update(consultant models.Consultant) error
}
