package model_test

import (
	"errors"
	"math"
	"testing"

	model "github.com/okian/revsent/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestLabel(t *testing.T) {
	convey.Convey("Given the labelling rule", t, func() {
		convey.Convey("When scoring the reference range 1-5", func() {
			convey.Convey("Then 1 and 2 are negative", func() {
				convey.So(model.Label(1), convey.ShouldEqual, model.Negative)
				convey.So(model.Label(2), convey.ShouldEqual, model.Negative)
			})

			convey.Convey("And 3 is neutral", func() {
				convey.So(model.Label(3), convey.ShouldEqual, model.Neutral)
			})

			convey.Convey("And 4 and 5 are positive", func() {
				convey.So(model.Label(4), convey.ShouldEqual, model.Positive)
				convey.So(model.Label(5), convey.ShouldEqual, model.Positive)
			})
		})

		convey.Convey("When scoring out-of-range values", func() {
			convey.Convey("Then they fall into the same buckets", func() {
				convey.So(model.Label(0), convey.ShouldEqual, model.Negative)
				convey.So(model.Label(-7), convey.ShouldEqual, model.Negative)
				convey.So(model.Label(42), convey.ShouldEqual, model.Positive)
				convey.So(model.Label(math.Inf(-1)), convey.ShouldEqual, model.Negative)
				convey.So(model.Label(math.Inf(1)), convey.ShouldEqual, model.Positive)
			})
		})

		convey.Convey("When scoring non-integral values", func() {
			convey.Convey("Then only the boundaries decide", func() {
				convey.So(model.Label(2.0), convey.ShouldEqual, model.Negative)
				convey.So(model.Label(1.5), convey.ShouldEqual, model.Negative)
				convey.So(model.Label(2.5), convey.ShouldEqual, model.Positive)
				convey.So(model.Label(3.5), convey.ShouldEqual, model.Positive)
			})
		})

		convey.Convey("When scoring NaN", func() {
			convey.Convey("Then it is positive", func() {
				convey.So(model.Label(math.NaN()), convey.ShouldEqual, model.Positive)
			})
		})

		convey.Convey("When sweeping a fine grid", func() {
			convey.Convey("Then each bucket matches its predicate", func() {
				for s := -2.0; s <= 7.0; s += 0.25 {
					got := model.Label(s)
					convey.So(got == model.Negative, convey.ShouldEqual, s <= 2)
					convey.So(got == model.Neutral, convey.ShouldEqual, s == 3)
					convey.So(got == model.Positive, convey.ShouldEqual, s > 2 && s != 3)
				}
			})
		})
	})
}

func TestSentimentString(t *testing.T) {
	convey.Convey("Given sentiment values", t, func() {
		convey.Convey("Then String and ParseSentiment round trip", func() {
			for _, s := range []model.Sentiment{model.Negative, model.Neutral, model.Positive} {
				parsed, err := model.ParseSentiment(s.String())
				convey.So(err, convey.ShouldBeNil)
				convey.So(parsed, convey.ShouldEqual, s)
				convey.So(s.Valid(), convey.ShouldBeTrue)
			}
		})

		convey.Convey("Then parsing is case-insensitive", func() {
			parsed, err := model.ParseSentiment("  POSITIVE ")
			convey.So(err, convey.ShouldBeNil)
			convey.So(parsed, convey.ShouldEqual, model.Positive)
		})

		convey.Convey("Then unknown labels are rejected", func() {
			_, err := model.ParseSentiment("mixed")
			convey.So(errors.Is(err, model.ErrUnknownSentiment), convey.ShouldBeTrue)
			convey.So(model.Unknown.Valid(), convey.ShouldBeFalse)
			convey.So(model.Unknown.String(), convey.ShouldEqual, "Unknown")
		})

		convey.Convey("Then Strings preserves order", func() {
			got := model.Strings([]model.Sentiment{model.Positive, model.Negative})
			convey.So(got, convey.ShouldResemble, []string{"Positive", "Negative"})
		})
	})
}
