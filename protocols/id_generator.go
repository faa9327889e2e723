package protocols

import "github.com/google/uuid"

type IdGenerator interface {
	NewId() (uuid.UUID, error)
}
