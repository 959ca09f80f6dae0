package store

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies millisecond timestamps for createdAt/updatedAt.
type Clock interface {
	NowMillis() int64
}

// IDGenerator produces unique opaque identifiers.
type IDGenerator interface {
	NewID() string
}

type systemClock struct{}

func (systemClock) NowMillis() int64 { return time.Now().UnixMilli() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// UUIDGenerator issues random (v4) UUIDs.
var UUIDGenerator IDGenerator = uuidGenerator{}

// ClockFunc adapts a function to Clock.
type ClockFunc func() int64

func (f ClockFunc) NowMillis() int64 { return f() }

// IDFunc adapts a function to IDGenerator.
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }
