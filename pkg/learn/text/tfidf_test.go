package text_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/revsent/pkg/learn"
	"github.com/okian/revsent/pkg/learn/text"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTfidfVectorizer(t *testing.T) {
	Convey("Given a vectorizer fit on two short reviews", t, func() {
		v := text.NewTfidfVectorizer()
		x, err := v.FitTransform([]string{"good product", "bad product"})
		So(err, ShouldBeNil)

		Convey("Then the vocabulary is sorted", func() {
			So(v.Vocabulary(), ShouldResemble, []string{"bad", "good", "product"})
			So(x.Cols, ShouldEqual, 3)
		})

		Convey("And shared terms get the smallest IDF", func() {
			product, _ := v.IDF("product")
			good, _ := v.IDF("good")
			So(product, ShouldAlmostEqual, 1.0, 1e-12)
			So(good, ShouldAlmostEqual, math.Log(3.0/2.0)+1, 1e-12)
		})

		Convey("And rows are L2 normalized", func() {
			for _, row := range x.Rows {
				var n float64
				for _, val := range row.Values {
					n += val * val
				}
				So(n, ShouldAlmostEqual, 1.0, 1e-12)
			}
		})

		Convey("When transforming text with unseen terms", func() {
			y, err := v.Transform([]string{"great product", "totally unseen words"})

			Convey("Then it does not fail and unseen terms weigh nothing", func() {
				So(err, ShouldBeNil)
				So(y.Rows[0].Indices, ShouldResemble, []int{2})
				So(y.Rows[0].Values[0], ShouldAlmostEqual, 1.0, 1e-12)
				So(y.Rows[1].NNZ(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given text with combining marks and numeric symbols", t, func() {
		v := text.NewTfidfVectorizer()
		_, err := v.FitTransform([]string{"cafe\u0301 na\u0308ive \u2163x x\u00b2"})

		Convey("Then marks end a token while letter-like numbers join one", func() {
			So(err, ShouldBeNil)
			So(v.Vocabulary(), ShouldResemble, []string{"cafe", "ive", "na", "x\u00b2", "\u2173x"})
		})
	})

	Convey("Given text with case, punctuation and one-letter tokens", t, func() {
		v := text.NewTfidfVectorizer()
		_, err := v.FitTransform([]string{"A GREAT read! I'd buy it again, 10/10."})

		Convey("Then tokens are lowercased and need two characters", func() {
			So(err, ShouldBeNil)
			So(v.Vocabulary(), ShouldResemble, []string{"10", "again", "buy", "great", "it", "read"})
		})
	})

	Convey("Given stop words", t, func() {
		v := text.NewTfidfVectorizer(text.WithStopWords("the", "IT"))
		_, err := v.FitTransform([]string{"the plot and it"})

		Convey("Then they are excluded", func() {
			So(err, ShouldBeNil)
			So(v.Vocabulary(), ShouldResemble, []string{"and", "plot"})
		})
	})

	Convey("Given documents without usable tokens", t, func() {
		v := text.NewTfidfVectorizer()
		_, err := v.FitTransform([]string{"a", "!", ""})

		Convey("Then fitting reports an empty vocabulary", func() {
			So(errors.Is(err, text.ErrEmptyVocabulary), ShouldBeTrue)
		})
	})

	Convey("Given an unfitted vectorizer", t, func() {
		v := text.NewTfidfVectorizer()
		_, err := v.Transform([]string{"hello"})

		Convey("Then transform fails", func() {
			So(errors.Is(err, learn.ErrNotFitted), ShouldBeTrue)
		})
	})

	Convey("Given a repeated term", t, func() {
		v := text.NewTfidfVectorizer()
		x, err := v.FitTransform([]string{"fun fun boring", "boring"})
		So(err, ShouldBeNil)

		Convey("Then raw counts scale the weight", func() {
			row := x.Rows[0]
			boring := row.At(0)
			fun := row.At(1)
			idfFun, _ := v.IDF("fun")
			idfBoring, _ := v.IDF("boring")
			So(fun/boring, ShouldAlmostEqual, 2*idfFun/idfBoring, 1e-12)
		})
	})
}
