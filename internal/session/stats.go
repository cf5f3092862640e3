package session

import (
	"context"

	"github.com/swasthyasetu/health-assistant/internal/language"
)

// Stats aggregates session counters for the admin surface.
type Stats struct {
	TotalSessions    int                       `json:"total_sessions"`
	OnboardedUsers   int                       `json:"onboarded_users"`
	TotalQueries     int                       `json:"total_queries"`
	EmergencyQueries int                       `json:"emergency_queries"`
	Languages        map[language.Language]int `json:"language_distribution"`
}

// ComputeStats summarizes all sessions in the store.
func ComputeStats(ctx context.Context, store Store) (Stats, error) {
	stats := Stats{Languages: make(map[language.Language]int)}
	sessions, err := store.Snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	for _, sess := range sessions {
		stats.TotalSessions++
		if sess.Onboarded {
			stats.OnboardedUsers++
			stats.Languages[sess.Language]++
		}
		stats.TotalQueries += sess.TotalQueries
		stats.EmergencyQueries += sess.EmergencyQueries
	}
	return stats, nil
}
