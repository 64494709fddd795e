// Package achievement derives unlocked badges from stats and profile.
package achievement

import (
	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/internal/domain/types"
)

// Achievement ids as stored on the profile.
const (
	FirstCorrect = "first_correct"
	Streak5      = "streak_5"
	Streak10     = "streak_10"
	Games10      = "games_10"
	Accuracy90   = "accuracy_90"
	Level5       = "level_5"
	Level10      = "level_10"
)

// Rule unlocks an achievement when its predicate holds.
type Rule struct {
	ID          string
	Name        string
	Description string
	Predicate   func(s model.GameStats, p model.UserProfile) bool
}

var rules = []Rule{
	{
		ID: FirstCorrect, Name: "First Steps", Description: "Guess your first song correctly",
		Predicate: func(s model.GameStats, _ model.UserProfile) bool { return s.Emoji.CorrectAnswers >= 1 },
	},
	{
		ID: Streak5, Name: "On Fire", Description: "Reach a streak of 5",
		Predicate: func(s model.GameStats, _ model.UserProfile) bool { return s.Emoji.BestStreak >= 5 },
	},
	{
		ID: Streak10, Name: "Unstoppable", Description: "Reach a streak of 10",
		Predicate: func(s model.GameStats, _ model.UserProfile) bool { return s.Emoji.BestStreak >= 10 },
	},
	{
		ID: Games10, Name: "Dedicated Swiftie", Description: "Finish 10 emoji games",
		Predicate: func(s model.GameStats, _ model.UserProfile) bool { return s.Emoji.GamesPlayed >= 10 },
	},
	{
		ID: Accuracy90, Name: "Perfectionist", Description: "Keep 90% guessing accuracy",
		Predicate: func(s model.GameStats, _ model.UserProfile) bool { return s.Emoji.AverageAccuracy >= 90 },
	},
	{
		ID: Level5, Name: "Rising Star", Description: "Reach level 5",
		Predicate: func(_ model.GameStats, p model.UserProfile) bool { return p.Level >= 5 },
	},
	{
		ID: Level10, Name: "Superstar", Description: "Reach level 10",
		Predicate: func(_ model.GameStats, p model.UserProfile) bool { return p.Level >= 10 },
	},
}

// Rules returns the rule table in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Evaluate appends every newly satisfied rule id to the profile and returns
// the updated profile with the display names of what was unlocked. Ids are
// never removed, so an achievement survives its stat falling back below the
// threshold.
func Evaluate(p model.UserProfile, s model.GameStats) (model.UserProfile, []string) {
	out := p.Clone()
	unlocked := []string{}
	for _, r := range rules {
		if out.HasAchievement(r.ID) || !r.Predicate(s, out) {
			continue
		}
		out.Achievements = append(out.Achievements, r.ID)
		unlocked = append(unlocked, r.Name)
	}
	return out, unlocked
}

// Catalog lists every achievement with its unlocked state for p.
func Catalog(p model.UserProfile) []types.AchievementStatus {
	out := make([]types.AchievementStatus, len(rules))
	for i, r := range rules {
		out[i] = types.AchievementStatus{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Unlocked:    p.HasAchievement(r.ID),
		}
	}
	return out
}
