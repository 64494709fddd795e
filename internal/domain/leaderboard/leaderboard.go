// Package leaderboard keeps the bounded, score-ordered list of finished games.
//
// Ordering: score DESC, then date DESC; an entry inserted later wins exact
// ties. The list never holds more than its capacity.
package leaderboard

import (
	"math"
	"sort"

	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/internal/domain/types"
)

// DefaultCapacity is the number of entries kept.
const DefaultCapacity = 50

// AccuracyFromScore is the accuracy recorded by the generic add-entry path:
// the raw score over the question count. Scores include time bonuses, so the
// result can exceed 100.
//
// NOTE: the trivia path uses AccuracyFromCorrect instead. The two disagree on
// purpose until the product decides which definition the board should show.
func AccuracyFromScore(score, totalQuestions int) int {
	return roundedPercent(score, totalQuestions)
}

// AccuracyFromCorrect is correct answers over questions, in [0, 100] for
// sane input.
func AccuracyFromCorrect(correct, totalQuestions int) int {
	return roundedPercent(correct, totalQuestions)
}

func roundedPercent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

// Insert returns a new list with e added, re-sorted and truncated to
// capacity. A non-positive capacity means DefaultCapacity.
func Insert(entries []model.LeaderboardEntry, e model.LeaderboardEntry, capacity int) []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, 0, len(entries)+1)
	out = append(out, e)
	out = append(out, entries...)
	return Normalize(out, capacity)
}

// Normalize sorts entries in place and truncates them to capacity. It is
// used on insert and on values read back from storage.
func Normalize(entries []model.LeaderboardEntry, capacity int) []model.LeaderboardEntry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})
	if len(entries) > capacity {
		entries = entries[:capacity]
	}
	return entries
}

// less reports whether a ranks before b.
func less(a, b model.LeaderboardEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Date.After(b.Date)
}

// Top returns at most n leading entries. n < 1 returns everything.
func Top(entries []model.LeaderboardEntry, n int) []model.LeaderboardEntry {
	if n < 1 || n > len(entries) {
		n = len(entries)
	}
	return append([]model.LeaderboardEntry(nil), entries[:n]...)
}

// Rank attaches display ranks. Entries with equal scores share a rank and
// ranks stay consecutive (1, 1, 2, ...). Input must already be ordered.
func Rank(entries []model.LeaderboardEntry) []types.RankedEntry {
	out := make([]types.RankedEntry, len(entries))
	rank := 0
	for i, e := range entries {
		if i == 0 || e.Score != entries[i-1].Score {
			rank++
		}
		out[i] = types.RankedEntry{Rank: rank, LeaderboardEntry: e}
	}
	return out
}
