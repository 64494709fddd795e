// Package types contains read shapes shared by the service and the HTTP API.
package types

import "github.com/okian/swiftrivia/internal/domain/model"

// RankedEntry is a leaderboard row with its display rank.
type RankedEntry struct {
	Rank int `json:"rank"`
	model.LeaderboardEntry
}

// AchievementStatus describes one achievement and whether it is unlocked.
type AchievementStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// Outcome is what a recorded game produced.
type Outcome struct {
	Stats         model.GameStats         `json:"stats"`
	Profile       *model.UserProfile      `json:"profile,omitempty"`
	PointsAwarded int                     `json:"pointsAwarded"`
	Unlocked      []string                `json:"unlocked"`
	Entry         *model.LeaderboardEntry `json:"entry,omitempty"`
	Duplicate     bool                    `json:"duplicate,omitempty"`
}
