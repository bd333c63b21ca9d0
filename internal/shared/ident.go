package shared

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UUIDSource mints prefixed ids backed by random uuids, e.g.
// "booking_1a2b3c4d".
type UUIDSource struct{}

func (UUIDSource) NewID(prefix string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s", prefix, id.String()[:8])
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
