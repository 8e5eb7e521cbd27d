package command

import (
	"time"

	"github.com/google/uuid"
)

// Command is the metadata envelope of a dispatched payload.
type Command struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommand wraps payload with a generated ID and the current time.
// The name is derived from the payload type:
//
//	cmd := command.NewCommand(refdata.CreateCountry{Code: "FR"})
//	// cmd.Name == "CreateCountry"
func NewCommand(payload any) Command {
	return Command{
		ID:        uuid.NewString(),
		Name:      NameOf(payload),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}
