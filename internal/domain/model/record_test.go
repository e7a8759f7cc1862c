package model_test

import (
	"testing"

	model "github.com/okian/revsent/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRecord(t *testing.T) {
	convey.Convey("Given a new record", t, func() {
		r := model.NewRecord("loved every page", 5)

		convey.Convey("Then it keeps text and score", func() {
			convey.So(r.Text(), convey.ShouldEqual, "loved every page")
			convey.So(r.Score(), convey.ShouldEqual, 5.0)
		})

		convey.Convey("And its label is derived from the score", func() {
			convey.So(r.Label(), convey.ShouldEqual, model.Label(r.Score()))
			convey.So(r.Label(), convey.ShouldEqual, model.Positive)
		})

		convey.Convey("When copying the record", func() {
			c := r

			convey.Convey("Then the copy is equal", func() {
				convey.So(c, convey.ShouldResemble, r)
			})
		})
	})

	convey.Convey("Given records built from a score list", t, func() {
		scores := []float64{1, 5, 3, 2, 4, 5}
		want := []model.Sentiment{
			model.Negative, model.Positive, model.Neutral,
			model.Negative, model.Positive, model.Positive,
		}

		convey.Convey("Then labels follow the rule", func() {
			for i, s := range scores {
				convey.So(model.NewRecord("x", s).Label(), convey.ShouldEqual, want[i])
			}
		})
	})

	convey.Convey("Given record content IDs", t, func() {
		a := model.NewRecord("same text", 4)
		b := model.NewRecord("same text", 4)
		c := model.NewRecord("same text", 5)
		d := model.NewRecord("other text", 4)

		convey.Convey("Then equal content yields equal IDs", func() {
			convey.So(a.ID(), convey.ShouldEqual, b.ID())
			convey.So(a.ID(), convey.ShouldNotBeEmpty)
		})

		convey.Convey("And any difference changes the ID", func() {
			convey.So(a.ID(), convey.ShouldNotEqual, c.ID())
			convey.So(a.ID(), convey.ShouldNotEqual, d.ID())
		})
	})
}
