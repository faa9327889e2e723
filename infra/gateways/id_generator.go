package gateways

import (
	"io"
	"sync"

	"github.com/google/uuid"
)

type IdGeneratorUUID struct {
	mutex  sync.Mutex
	reader io.Reader
}

func NewIdGeneratorUUID() *IdGeneratorUUID {
	return &IdGeneratorUUID{}
}

// NewIdGeneratorFromReader draws random bytes from reader, so a seeded source
// yields a repeatable sequence of ids.
func NewIdGeneratorFromReader(reader io.Reader) *IdGeneratorUUID {
	return &IdGeneratorUUID{reader: reader}
}

func (g *IdGeneratorUUID) NewId() (uuid.UUID, error) {
	if g.reader == nil {
		return uuid.NewRandom()
	}
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return uuid.NewRandomFromReader(g.reader)
}
