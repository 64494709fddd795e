// Package profile creates the player profile and advances its points and level.
package profile

import (
	"math"
	"strings"
	"time"

	"github.com/okian/swiftrivia/internal/domain/model"
)

// PointsPerLevel is the number of points between two levels.
const PointsPerLevel = 100

var avatars = []string{"🎤", "🎸", "🎹", "🎵", "🎶", "⭐", "💜", "💖", "✨", "🌟", "💫", "🦋"}

// Avatars returns the selectable avatar symbols in display order.
func Avatars() []string {
	return append([]string(nil), avatars...)
}

// ValidAvatar reports whether a is one of Avatars().
func ValidAvatar(a string) bool {
	for _, v := range avatars {
		if v == a {
			return true
		}
	}
	return false
}

// Validate checks registration input at the API boundary.
func Validate(username, avatar string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	if !ValidAvatar(avatar) {
		return ErrUnknownAvatar
	}
	return nil
}

// New builds a fresh profile: no points, level 1, no achievements.
func New(username, avatar string, now time.Time) model.UserProfile {
	return model.UserProfile{
		Username:     strings.TrimSpace(username),
		Avatar:       avatar,
		CreatedAt:    now.UTC(),
		TotalPoints:  0,
		Level:        1,
		Achievements: []string{},
	}
}

// LevelFor derives the level from a point total.
func LevelFor(totalPoints int) int {
	if totalPoints < 0 {
		return 1
	}
	return totalPoints/PointsPerLevel + 1
}

// AddPoints returns p with points added and its level recomputed. The level
// is only ever raised. Negative points, or a credit that would overflow the
// total, are refused and p is returned as is with ok == false.
func AddPoints(p model.UserProfile, points int) (model.UserProfile, bool) {
	if points < 0 || p.TotalPoints > math.MaxInt-points {
		return p, false
	}
	out := p.Clone()
	out.TotalPoints += points
	if lvl := LevelFor(out.TotalPoints); lvl > out.Level {
		out.Level = lvl
	}
	return out, true
}
