package stats_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecordEmojiAttempt(t *testing.T) {
	Convey("Given zeroed stats", t, func() {
		s := model.DefaultStats()

		Convey("When five correct attempts with streak 5 are recorded", func() {
			total := 0
			for i := 0; i < 5; i++ {
				var pts int
				s, pts = stats.RecordEmojiAttempt(s, true, 5)
				total += pts
			}

			Convey("Then counters, accuracy and best streak should match", func() {
				So(s.Emoji.CorrectAnswers, ShouldEqual, 5)
				So(s.Emoji.TotalAttempts, ShouldEqual, 5)
				So(s.Emoji.AverageAccuracy, ShouldEqual, 100.0)
				So(s.Emoji.BestStreak, ShouldEqual, 5)
				So(s.Emoji.CurrentStreak, ShouldEqual, 5)
				So(total, ShouldEqual, 50)
			})

			Convey("And an incorrect attempt should reset only the current streak", func() {
				var pts int
				s, pts = stats.RecordEmojiAttempt(s, false, 99)

				So(pts, ShouldEqual, 0)
				So(s.Emoji.CurrentStreak, ShouldEqual, 0)
				So(s.Emoji.BestStreak, ShouldEqual, 5)
				So(s.Emoji.TotalAttempts, ShouldEqual, 6)
				So(s.Emoji.CorrectAnswers, ShouldEqual, 5)
				So(s.Emoji.AverageAccuracy, ShouldAlmostEqual, 500.0/6.0, 1e-9)
			})
		})

		Convey("When the first attempt is incorrect", func() {
			s2, pts := stats.RecordEmojiAttempt(s, false, 0)

			Convey("Then accuracy should be zero", func() {
				So(pts, ShouldEqual, 0)
				So(s2.Emoji.AverageAccuracy, ShouldEqual, 0.0)
				So(s2.Emoji.TotalAttempts, ShouldEqual, 1)
			})

			Convey("And the input should be untouched", func() {
				So(s.Emoji.TotalAttempts, ShouldEqual, 0)
			})
		})
	})
}

func TestEmojiInvariants(t *testing.T) {
	Convey("Given a random sequence of emoji attempts", t, func() {
		rng := rand.New(rand.NewSource(7))
		s := model.DefaultStats()
		streak := 0
		best := 0

		for i := 0; i < 500; i++ {
			correct := rng.Intn(3) > 0
			if correct {
				streak++
			} else {
				streak = 0
			}
			prevBest := s.Emoji.BestStreak
			s, _ = stats.RecordEmojiAttempt(s, correct, streak)
			if streak > best {
				best = streak
			}

			So(s.Emoji.CorrectAnswers, ShouldBeLessThanOrEqualTo, s.Emoji.TotalAttempts)
			So(s.Emoji.BestStreak, ShouldBeGreaterThanOrEqualTo, prevBest)
			want := 100 * float64(s.Emoji.CorrectAnswers) / float64(s.Emoji.TotalAttempts)
			So(math.Abs(s.Emoji.AverageAccuracy-want), ShouldBeLessThan, 1e-9)
		}

		Convey("Then the best streak should be the maximum streak observed", func() {
			So(s.Emoji.BestStreak, ShouldEqual, best)
			So(s.Emoji.TotalAttempts, ShouldEqual, 500)
		})
	})
}

func TestCompleteEmojiGame(t *testing.T) {
	Convey("Given zeroed stats", t, func() {
		s := stats.CompleteEmojiGame(model.DefaultStats())
		s = stats.CompleteEmojiGame(s)

		Convey("Then games played should be counted", func() {
			So(s.Emoji.GamesPlayed, ShouldEqual, 2)
			So(s.Trivia.GamesPlayed, ShouldEqual, 0)
		})
	})
}

func TestRecordTriviaResult(t *testing.T) {
	Convey("Given zeroed stats", t, func() {
		s := model.DefaultStats()
		result := model.TriviaResult{Score: 450, TotalQuestions: 10, CorrectAnswers: 9, TimeSpent: 120}

		Convey("When a fearless session is recorded", func() {
			s2, pts := stats.RecordTriviaResult(s, result, "fearless")

			Convey("Then the session totals should be accumulated", func() {
				So(s2.Trivia.GamesPlayed, ShouldEqual, 1)
				So(s2.Trivia.BestScore, ShouldEqual, 450)
				So(s2.Trivia.CorrectAnswers, ShouldEqual, 9)
				So(s2.Trivia.TotalAttempts, ShouldEqual, 10)
				So(s2.Trivia.CompletedEras, ShouldResemble, []string{"fearless"})
				So(pts, ShouldEqual, 45)
			})

			Convey("And recording the same era again should not duplicate it", func() {
				s3, _ := stats.RecordTriviaResult(s2, model.TriviaResult{Score: 200, TotalQuestions: 10, CorrectAnswers: 4}, "fearless")

				So(s3.Trivia.CompletedEras, ShouldHaveLength, 1)
				So(s3.Trivia.GamesPlayed, ShouldEqual, 2)
				So(s3.Trivia.BestScore, ShouldEqual, 450)
				So(s3.Trivia.CorrectAnswers, ShouldEqual, 13)
			})

			Convey("And a higher score in a new era should raise the best score", func() {
				s3, pts := stats.RecordTriviaResult(s2, model.TriviaResult{Score: 1999, TotalQuestions: 10, CorrectAnswers: 10}, "red")

				So(s3.Trivia.BestScore, ShouldEqual, 1999)
				So(s3.Trivia.CompletedEras, ShouldResemble, []string{"fearless", "red"})
				So(pts, ShouldEqual, 199)
			})
		})

		Convey("When counters are already at the largest int", func() {
			s.Trivia.GamesPlayed = math.MaxInt
			s.Trivia.CorrectAnswers = math.MaxInt - 3
			s.Trivia.TotalAttempts = math.MaxInt
			s2, _ := stats.RecordTriviaResult(s, result, "red")

			Convey("Then they should saturate instead of wrapping", func() {
				So(s2.Trivia.GamesPlayed, ShouldEqual, math.MaxInt)
				So(s2.Trivia.CorrectAnswers, ShouldEqual, math.MaxInt)
				So(s2.Trivia.TotalAttempts, ShouldEqual, math.MaxInt)
			})
		})
	})
}

func TestAccuracy(t *testing.T) {
	Convey("Given counters", t, func() {
		So(stats.Accuracy(0, 0), ShouldEqual, 0.0)
		So(stats.Accuracy(1, 4), ShouldEqual, 25.0)
		So(stats.Accuracy(3, 3), ShouldEqual, 100.0)
	})
}
