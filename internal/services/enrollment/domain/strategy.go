package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
)

// SeatStrategy selects how Enroll claims a seat from the course registry.
type SeatStrategy string

const (
	// SeatStrategyAtomic asks the registry to decrement-if-positive in one call.
	SeatStrategyAtomic SeatStrategy = "atomic"
	// SeatStrategySerialized reads the seat count and writes it back minus one
	// while holding a per-course lock. Only safe with a single coordinator
	// process.
	SeatStrategySerialized SeatStrategy = "serialized"
	// SeatStrategySnapshot reads then writes with no guard. Concurrent
	// enrollments can oversubscribe a course; kept to reproduce that race.
	SeatStrategySnapshot SeatStrategy = "snapshot"
)

// DefaultSeatStrategy is used when none is configured.
const DefaultSeatStrategy = SeatStrategyAtomic

// ParseSeatStrategy parses a configured strategy name. Empty means the default.
func ParseSeatStrategy(value string) (SeatStrategy, error) {
	switch strategy := SeatStrategy(strings.ToLower(strings.TrimSpace(value))); strategy {
	case "":
		return DefaultSeatStrategy, nil
	case SeatStrategyAtomic, SeatStrategySerialized, SeatStrategySnapshot:
		return strategy, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeSeatStrategyInvalid, fmt.Sprintf("unknown seat strategy %q", value), map[string]string{"Strategy": value})
	}
}
