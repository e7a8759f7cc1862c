package reviewgen_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/okian/revsent/internal/adapters/reviews"
	"github.com/okian/revsent/internal/reviewgen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	Convey("Given the default configuration", t, func() {
		cfg := reviewgen.DefaultConfig()
		cfg.NumReviews = 2000

		out, err := reviewgen.Generate(ctx, cfg)
		So(err, ShouldBeNil)

		Convey("Then the requested number of reviews is produced", func() {
			So(out, ShouldHaveLength, 2000)
		})

		Convey("And ratings lie in 1..5 and skew positive", func() {
			high := 0
			for _, r := range out {
				So(r.Overall, ShouldBeBetweenOrEqual, 1, 5)
				So(r.ReviewText, ShouldNotBeBlank)
				if r.Overall >= 4 {
					high++
				}
			}
			So(high, ShouldBeGreaterThan, 1500)
		})

		Convey("And the output does not depend on the worker count", func() {
			cfg.Workers = 1
			again, err := reviewgen.Generate(ctx, cfg)
			So(err, ShouldBeNil)
			So(again, ShouldResemble, out)
		})

		Convey("And a different seed changes the output", func() {
			cfg.Seed = 99
			other, err := reviewgen.Generate(ctx, cfg)
			So(err, ShouldBeNil)
			So(other, ShouldNotResemble, out)
		})
	})

	Convey("Given invalid settings", t, func() {
		cfg := reviewgen.DefaultConfig()
		cfg.RatingWeights = [5]float64{}

		_, err := reviewgen.Generate(ctx, cfg)

		Convey("Then generation is refused", func() {
			So(errors.Is(err, reviewgen.ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := reviewgen.Generate(cctx, reviewgen.DefaultConfig())

		Convey("Then the cancellation is reported", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given generated reviews", t, func() {
		cfg := reviewgen.DefaultConfig()
		cfg.NumReviews = 50
		out, err := reviewgen.Generate(context.Background(), cfg)
		So(err, ShouldBeNil)

		Convey("When they are written as JSON lines", func() {
			var buf bytes.Buffer
			So(reviewgen.Write(&buf, out), ShouldBeNil)

			Convey("Then the review reader accepts every line", func() {
				recs, stats, err := reviews.NewReader().Read(context.Background(), &buf)
				So(err, ShouldBeNil)
				So(recs, ShouldHaveLength, 50)
				So(stats.Skipped, ShouldEqual, 0)
				So(recs[0].Text(), ShouldEqual, out[0].ReviewText)
			})
		})

		Convey("When they are written to a file", func() {
			path := filepath.Join(t.TempDir(), "reviews.json")
			So(reviewgen.WriteFile(path, out), ShouldBeNil)

			Convey("Then the file can be read back", func() {
				recs, _, err := reviews.NewReader().ReadFile(context.Background(), path)
				So(err, ShouldBeNil)
				So(recs, ShouldHaveLength, 50)
			})
		})
	})
}
