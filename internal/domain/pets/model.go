package pets

import "time"

// Pet representa el perfil de una mascota de un único dueño.
type Pet struct {
	ID          string
	OwnerUserID string

	Name  string
	Breed string
	Age   float64 // años; puede ser fraccional (0.5 = 6 meses)

	// PhotoURL es opaco para el store: URL o data URL base64.
	PhotoURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
