package factory

import (
	"fmt"
	"sync/atomic"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
)

var sequence atomic.Int64

// NewUser builds a user with unique email and phone so fixtures never trip
// the uniqueness constraints by accident.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	n := sequence.Add(1)
	now := time.Now()

	// Build only honors a single overrides map, so the custom data has to be
	// merged into the defaults first, later maps winning.
	data := map[string]any{
		"UUID":      uuid.New(),
		"Name":      fmt.Sprintf("User%d", n),
		"Email":     fmt.Sprintf("user%d@example.com", n),
		"Phone":     fmt.Sprintf("119%08d", n),
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	for _, overrides := range customData {
		for key, value := range overrides {
			data[key] = value
		}
	}

	return instance.Build(data)
}
