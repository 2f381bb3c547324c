// Package dashboard contains dashboard summary use cases.
package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Cache key layout: dashboard:{kind}:{collectorID}[:{date}].

func dailyCollectionKey(collectorID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("dashboard:daily-collection:%s:%s", collectorID, day.UTC().Format("2006-01-02"))
}

func dailySavingsKey(collectorID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("dashboard:daily-savings:%s:%s", collectorID, day.UTC().Format("2006-01-02"))
}

func outstandingKey(collectorID uuid.UUID) string {
	return fmt.Sprintf("dashboard:outstanding:%s", collectorID)
}
