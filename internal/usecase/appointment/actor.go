package appointment

import "github.com/Pranaysalavadhi/medic-connect-online/internal/models"

// Actor is the authenticated identity performing an operation, as restored
// by the session layer. Scoping decisions key on ID, never on names.
type Actor struct {
	ID   uint
	Name string
	Role models.Role
}
