package breedtips

import (
	"strings"
	"time"
)

// BreedTip cachea los tips generados para una raza.
type BreedTip struct {
	Breed     string // clave normalizada (ver Key)
	Tips      []string
	UpdatedAt time.Time
}

// Key normaliza la raza: minúsculas, sin espacios sobrantes.
// "  Golden   Retriever " => "golden retriever"
func Key(breed string) string {
	return strings.ToLower(strings.Join(strings.Fields(breed), " "))
}
