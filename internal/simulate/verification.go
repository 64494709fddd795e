package simulate

import (
	"errors"
	"fmt"

	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/internal/domain/profile"
	"github.com/okian/swiftrivia/internal/domain/types"
)

// Observed is everything a run read back from the service.
type Observed struct {
	Capacity    int
	Before      model.GameStats
	After       model.GameStats
	Profile     model.UserProfile
	Leaderboard []types.RankedEntry
	Results     []result
	Replays     []result
}

// Verify checks the run against the tracker's invariants and returns every
// violation found, joined.
func Verify(o Observed) error {
	var errs []error
	errs = append(errs, verifyLeaderboard(o.Leaderboard, o.Capacity)...)
	errs = append(errs, verifyCounters(o)...)
	errs = append(errs, verifyProfile(o.Profile)...)

	for _, r := range o.Replays {
		if r.err == nil && !r.duplicate {
			errs = append(errs, fmt.Errorf("replayed session %s was recorded twice", r.session.ID))
		}
	}
	return errors.Join(errs...)
}

func verifyLeaderboard(board []types.RankedEntry, capacity int) []error {
	var errs []error
	if capacity > 0 && len(board) > capacity {
		errs = append(errs, fmt.Errorf("leaderboard holds %d entries, capacity is %d", len(board), capacity))
	}
	for i := range board {
		if i == 0 {
			if board[0].Rank != 1 {
				errs = append(errs, fmt.Errorf("first entry has rank %d", board[0].Rank))
			}
			continue
		}
		prev, cur := board[i-1], board[i]
		switch {
		case cur.Score > prev.Score:
			errs = append(errs, fmt.Errorf("entry %d scores %d above entry %d (%d)", i, cur.Score, i-1, prev.Score))
		case cur.Score == prev.Score && cur.Date.After(prev.Date):
			errs = append(errs, fmt.Errorf("tied entry %d is newer than entry %d", i, i-1))
		}
		want := prev.Rank + 1
		if cur.Score == prev.Score {
			want = prev.Rank
		}
		if cur.Rank != want {
			errs = append(errs, fmt.Errorf("entry %d has rank %d, want %d", i, cur.Rank, want))
		}
	}
	return errs
}

func verifyCounters(o Observed) []error {
	var trivia, emoji, attempts, best int
	for _, r := range o.Results {
		attempts += r.attempts
		if r.err != nil || r.duplicate {
			continue
		}
		switch r.session.Mode {
		case ModeTrivia:
			trivia++
		case ModeEmoji:
			emoji++
		}
		if r.outcome.Entry != nil {
			best = max(best, r.outcome.Entry.Score)
		}
	}

	var errs []error
	if got := o.After.Trivia.GamesPlayed - o.Before.Trivia.GamesPlayed; got != trivia {
		errs = append(errs, fmt.Errorf("trivia games grew by %d, %d were recorded", got, trivia))
	}
	if got := o.After.Emoji.GamesPlayed - o.Before.Emoji.GamesPlayed; got != emoji {
		errs = append(errs, fmt.Errorf("emoji games grew by %d, %d were recorded", got, emoji))
	}
	if got := o.After.Emoji.TotalAttempts - o.Before.Emoji.TotalAttempts; got != attempts {
		errs = append(errs, fmt.Errorf("emoji attempts grew by %d, %d were submitted", got, attempts))
	}
	if best > 0 && (len(o.Leaderboard) == 0 || o.Leaderboard[0].Score < best) {
		errs = append(errs, fmt.Errorf("best recorded score %d is missing from the top of the leaderboard", best))
	}
	if o.After.Emoji.BestStreak < o.Before.Emoji.BestStreak {
		errs = append(errs, errors.New("best emoji streak decreased"))
	}
	return errs
}

func verifyProfile(p model.UserProfile) []error {
	var errs []error
	if want := profile.LevelFor(p.TotalPoints); p.Level < want {
		errs = append(errs, fmt.Errorf("level %d is below %d for %d points", p.Level, want, p.TotalPoints))
	}
	seen := make(map[string]bool, len(p.Achievements))
	for _, a := range p.Achievements {
		if seen[a] {
			errs = append(errs, fmt.Errorf("achievement %s listed twice", a))
		}
		seen[a] = true
	}
	return errs
}
