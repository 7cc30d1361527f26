package core

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces node ids.
type IDGenerator interface {
	NextID() string
}

// SequenceGenerator hands out increasing integer ids with an optional prefix.
type SequenceGenerator struct {
	prefix  string
	counter *atomic.Uint64
}

var processCounter atomic.Uint64

// NewSequenceGenerator returns a generator backed by the process-wide
// counter, so ids stay distinct across every generator in the process.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, counter: &processCounter}
}

// NextID returns the next id in the sequence.
func (g *SequenceGenerator) NextID() string {
	return g.prefix + strconv.FormatUint(g.counter.Add(1), 10)
}

// maxIDAttempts bounds FreshID for generators that keep repeating ids.
const maxIDAttempts = 64

// FreshID draws ids from ids until one is not taken. It gives up after
// maxIDAttempts draws.
func FreshID(ids IDGenerator, taken func(id string) bool) (string, bool) {
	for i := 0; i < maxIDAttempts; i++ {
		id := ids.NextID()
		if id != "" && !taken(id) {
			return id, true
		}
	}
	return "", false
}

// UUIDGenerator generates random UUIDv4 ids.
type UUIDGenerator struct{}

// NextID returns a new UUID string.
func (UUIDGenerator) NextID() string {
	return uuid.New().String()
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NextID() string { return f() }
