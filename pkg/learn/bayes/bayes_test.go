package bayes_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/revsent/pkg/learn"
	"github.com/okian/revsent/pkg/learn/bayes"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

func TestGaussianNB(t *testing.T) {
	Convey("Given two well separated Gaussian blobs", t, func() {
		x := mat.NewDense(6, 2, []float64{
			-2, -1,
			-1, -2,
			-1.5, -1.5,
			2, 1,
			1, 2,
			1.5, 1.5,
		})
		y := []string{"Negative", "Negative", "Negative", "Positive", "Positive", "Positive"}
		nb := bayes.New()
		So(nb.FitDense(context.Background(), x, y), ShouldBeNil)

		Convey("Then the training points are classified correctly", func() {
			pred, err := nb.PredictDense(x)
			So(err, ShouldBeNil)
			So(pred, ShouldResemble, y)
		})

		Convey("And probabilities sum to one", func() {
			proba, err := nb.PredictProbaDense(mat.NewDense(1, 2, []float64{0.1, 0.2}))
			So(err, ShouldBeNil)
			So(proba[0][0]+proba[0][1], ShouldAlmostEqual, 1.0, 1e-12)
			So(proba[0][1], ShouldBeGreaterThan, proba[0][0])
		})

		Convey("And the smoothing is relative to the largest variance", func() {
			// Both columns have population variance 29/12 over all samples.
			So(nb.Epsilon(), ShouldAlmostEqual, 1e-9*29.0/12.0, 1e-15)
		})
	})

	Convey("Given a constant feature", t, func() {
		x := mat.NewDense(4, 2, []float64{1, 0, 1, 0, 1, 5, 1, 5})
		y := []string{"a", "a", "b", "b"}
		nb := bayes.New()

		Convey("Then zero variance does not break prediction", func() {
			So(nb.FitDense(context.Background(), x, y), ShouldBeNil)
			pred, err := nb.PredictDense(x)
			So(err, ShouldBeNil)
			So(pred, ShouldResemble, y)
		})
	})

	Convey("Given the sparse adapter", t, func() {
		clf := bayes.NewClassifier()
		x := learn.FromDense([][]float64{{1, 0}, {0.9, 0}, {0, 1}, {0, 0.8}})
		y := []string{"a", "a", "b", "b"}

		Convey("Then it fits and predicts sparse matrices", func() {
			So(clf.Fit(context.Background(), x, y), ShouldBeNil)
			acc, err := learn.Score(clf, x, y)
			So(err, ShouldBeNil)
			So(acc, ShouldEqual, 1.0)
		})
	})

	Convey("Given misuse", t, func() {
		nb := bayes.New()

		Convey("Then predicting before fitting fails", func() {
			_, err := nb.PredictDense(mat.NewDense(1, 1, []float64{1}))
			So(errors.Is(err, learn.ErrNotFitted), ShouldBeTrue)
		})

		Convey("And a single class is rejected", func() {
			err := nb.FitDense(context.Background(), mat.NewDense(2, 1, []float64{1, 2}), []string{"a", "a"})
			So(errors.Is(err, learn.ErrSingleClass), ShouldBeTrue)
		})
	})
}
