package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// AttemptExpirer is the slice of the attempt service the sweep needs
type AttemptExpirer interface {
	ExpireOverdue() (int, error)
}

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[ATTEMPT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartAttemptExpiryScheduler sweeps in-progress attempts past their
// deadline every minute. Expiry is also checked lazily on every read,
// so the sweep only bounds how stale an abandoned attempt can get.
func StartAttemptExpiryScheduler(svc AttemptExpirer) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@every 1m", func() {
		expired, err := svc.ExpireOverdue()
		if err != nil {
			logScheduler("Error expiring attempts: " + err.Error())
			return
		}
		if expired > 0 {
			logScheduler(fmt.Sprintf("Expired %d attempts", expired))
		}
	})
	if err != nil {
		logScheduler("Failed to register expiry job: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Attempt expiry scheduler started")
	return c
}
