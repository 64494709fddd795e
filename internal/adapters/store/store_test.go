package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/swiftrivia/internal/adapters/storage"
	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// flakyBackend wraps a memory backend and fails writes on demand.
type flakyBackend struct {
	*storage.Memory
	failSave bool
}

func (f *flakyBackend) Save(ctx context.Context, key string, value []byte) error {
	if f.failSave {
		return errors.New("disk full")
	}
	return f.Memory.Save(ctx, key, value)
}

// recordingLogger keeps the level and message of every record.
type recordingLogger struct {
	records *[]string
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{records: &[]string{}}
}

func (l recordingLogger) add(level, msg string) { *l.records = append(*l.records, level+": "+msg) }

func (l recordingLogger) Info(_ context.Context, msg string, _ ...logger.Field)  { l.add("info", msg) }
func (l recordingLogger) Error(_ context.Context, msg string, _ ...logger.Field) { l.add("error", msg) }
func (l recordingLogger) Debug(_ context.Context, msg string, _ ...logger.Field) { l.add("debug", msg) }
func (l recordingLogger) Warn(_ context.Context, msg string, _ ...logger.Field)  { l.add("warn", msg) }
func (l recordingLogger) Fatal(_ context.Context, msg string, _ ...logger.Field) { l.add("fatal", msg) }
func (l recordingLogger) Named(string) logger.Logger                             { return l }
func (l recordingLogger) With(...logger.Field) logger.Logger                     { return l }

func TestStore_Profile(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store over an empty memory backend", t, func() {
		mem := storage.NewMemory()
		s := New(mem)

		Convey("When no profile was saved", func() {
			_, ok := s.Profile(ctx)
			_, err := s.loadProfile(ctx)

			Convey("Then it should be absent with ErrNotFound", func() {
				So(ok, ShouldBeFalse)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a profile is saved", func() {
			created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			s.SaveProfile(ctx, model.UserProfile{
				Username: "Alex", Avatar: "⭐", CreatedAt: created,
				TotalPoints: 250, Level: 3, Achievements: []string{"first_correct"},
			})

			Convey("Then it should read back unchanged", func() {
				p, ok := s.Profile(ctx)
				So(ok, ShouldBeTrue)
				So(p.Username, ShouldEqual, "Alex")
				So(p.CreatedAt.Equal(created), ShouldBeTrue)
				So(p.Level, ShouldEqual, 3)
				So(p.Achievements, ShouldResemble, []string{"first_correct"})
			})

			Convey("And clearing it should make it absent", func() {
				s.ClearProfile(ctx)
				_, ok := s.Profile(ctx)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the stored profile is not valid JSON", func() {
			So(mem.Save(ctx, KeyProfile, []byte("{not json")), ShouldBeNil)
			_, ok := s.Profile(ctx)
			_, err := s.loadProfile(ctx)

			Convey("Then it should be treated as absent with ErrDecode", func() {
				So(ok, ShouldBeFalse)
				So(errors.Is(err, ErrDecode), ShouldBeTrue)
			})
		})

		Convey("When the stored profile has no username", func() {
			So(mem.Save(ctx, KeyProfile, []byte(`{"avatar":"⭐","level":2}`)), ShouldBeNil)
			_, err := s.loadProfile(ctx)

			Convey("Then it should be treated as corrupt", func() {
				So(errors.Is(err, ErrDecode), ShouldBeTrue)
			})
		})

		Convey("When the stored profile lacks achievements", func() {
			So(mem.Save(ctx, KeyProfile, []byte(`{"username":"Alex","avatar":"⭐"}`)), ShouldBeNil)
			p, ok := s.Profile(ctx)

			Convey("Then it should be normalized", func() {
				So(ok, ShouldBeTrue)
				So(p.Achievements, ShouldNotBeNil)
				So(p.Achievements, ShouldBeEmpty)
				So(p.Level, ShouldEqual, 1)
			})
		})
	})
}

func TestStore_Stats(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store over an empty memory backend", t, func() {
		mem := storage.NewMemory()
		s := New(mem)

		Convey("When nothing was saved", func() {
			st := s.Stats(ctx)

			Convey("Then zeroed defaults should be returned", func() {
				So(st, ShouldResemble, model.DefaultStats())
			})
		})

		Convey("When stats are saved", func() {
			st := model.DefaultStats()
			st.Emoji.CorrectAnswers = 3
			st.Emoji.AverageAccuracy = 75
			st.Trivia.CompletedEras = []string{"fearless"}
			s.SaveStats(ctx, st)

			Convey("Then they should read back", func() {
				So(s.Stats(ctx), ShouldResemble, st)
			})

			Convey("And the raw record should use the documented field names", func() {
				raw, _ := mem.Load(ctx, KeyStats)
				So(string(raw), ShouldContainSubstring, `"emojiGame"`)
				So(string(raw), ShouldContainSubstring, `"completedEras":["fearless"]`)
			})
		})

		Convey("When the stored stats are corrupt", func() {
			So(mem.Save(ctx, KeyStats, []byte("[]")), ShouldBeNil)
			_, err := s.loadStats(ctx)

			Convey("Then defaults should be returned", func() {
				So(errors.Is(err, ErrDecode), ShouldBeTrue)
				So(s.Stats(ctx), ShouldResemble, model.DefaultStats())
			})
		})
	})
}

func TestStore_Leaderboard(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with capacity 2", t, func() {
		mem := storage.NewMemory()
		s := New(mem, WithLeaderboardCapacity(2))

		Convey("When nothing was saved", func() {
			entries := s.Leaderboard(ctx)

			Convey("Then an empty, non-nil list should be returned", func() {
				So(entries, ShouldNotBeNil)
				So(entries, ShouldBeEmpty)
			})
		})

		Convey("When an unordered, oversized list is stored", func() {
			now := time.Now().UTC()
			So(mem.Save(ctx, KeyLeaderboard, []byte(`[
				{"username":"a","score":10,"date":"`+now.Format(time.RFC3339)+`"},
				{"username":"b","score":30,"date":"`+now.Format(time.RFC3339)+`"},
				{"username":"c","score":20,"date":"`+now.Format(time.RFC3339)+`"}
			]`)), ShouldBeNil)

			Convey("Then it should be sorted and truncated on read", func() {
				entries := s.Leaderboard(ctx)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Username, ShouldEqual, "b")
				So(entries[1].Username, ShouldEqual, "c")
			})
		})

		Convey("When a nil list is saved", func() {
			s.SaveLeaderboard(ctx, nil)
			raw, _ := mem.Load(ctx, KeyLeaderboard)

			Convey("Then an empty JSON array should be stored", func() {
				So(string(raw), ShouldEqual, "[]")
			})
		})
	})
}

func TestStore_BackendFailures(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store without a backend", t, func() {
		s := New(nil)

		Convey("Then reads should return defaults and writes should not panic", func() {
			_, ok := s.Profile(ctx)
			So(ok, ShouldBeFalse)
			So(s.Stats(ctx), ShouldResemble, model.DefaultStats())
			So(s.Leaderboard(ctx), ShouldBeEmpty)

			_, err := s.loadStats(ctx)
			So(errors.Is(err, ErrBackend), ShouldBeTrue)
			So(errors.Is(err, storage.ErrUnavailable), ShouldBeTrue)

			So(func() {
				s.SaveProfile(ctx, model.UserProfile{Username: "Alex"})
				s.SaveStats(ctx, model.DefaultStats())
				s.SaveLeaderboard(ctx, nil)
				s.ClearProfile(ctx)
			}, ShouldNotPanic)
		})
	})

	Convey("Given a backend whose writes fail", t, func() {
		b := &flakyBackend{Memory: storage.NewMemory()}
		s := New(b)
		st := model.DefaultStats()
		st.Emoji.BestStreak = 4
		s.SaveStats(ctx, st)

		Convey("When a later write fails", func() {
			b.failSave = true
			st.Emoji.BestStreak = 9
			s.SaveStats(ctx, st)

			Convey("Then the previous value should survive", func() {
				So(s.Stats(ctx).Emoji.BestStreak, ShouldEqual, 4)
			})
		})
	})
}

func TestStore_FailureLogging(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with a recording logger", t, func() {
		log := newRecordingLogger()

		Convey("When a corrupt record is read", func() {
			mem := storage.NewMemory()
			So(mem.Save(ctx, KeyStats, []byte("[1,2")), ShouldBeNil)
			New(mem, WithLogger(log)).Stats(ctx)

			Convey("Then the discard should be logged at error level", func() {
				So(*log.records, ShouldContain, "error: discarding unreadable record")
			})
		})

		Convey("When a profile without a username is read", func() {
			mem := storage.NewMemory()
			So(mem.Save(ctx, KeyProfile, []byte(`{"username":"","level":2}`)), ShouldBeNil)
			New(mem, WithLogger(log)).Profile(ctx)

			Convey("Then the discard should be logged at error level", func() {
				So(*log.records, ShouldContain, "error: discarding unreadable record")
			})
		})

		Convey("When persistence is unavailable", func() {
			New(nil, WithLogger(log)).Stats(ctx)

			Convey("Then the failure should only be logged at debug level", func() {
				So(*log.records, ShouldResemble, []string{"debug: failed to load record"})
			})
		})
	})
}
