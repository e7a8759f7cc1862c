package linear_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/revsent/pkg/learn"
	"github.com/okian/revsent/pkg/learn/linear"
	"gonum.org/v1/gonum/optimize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogisticRegression(t *testing.T) {
	Convey("Given two separable clusters", t, func() {
		x := learn.FromDense([][]float64{
			{1.0, 0.0}, {0.9, 0.1}, {0.8, 0.0},
			{0.0, 1.0}, {0.1, 0.9}, {0.0, 0.8},
		})
		y := []string{"Negative", "Negative", "Negative", "Positive", "Positive", "Positive"}
		clf := linear.New(linear.WithC(10))
		So(clf.Fit(context.Background(), x, y), ShouldBeNil)

		Convey("Then the fit converged", func() {
			So(clf.ConvergenceErr(), ShouldBeNil)
			So(clf.Status().Early(), ShouldBeFalse)
		})

		Convey("Then the training data is classified correctly", func() {
			pred, err := clf.Predict(x)
			So(err, ShouldBeNil)
			So(pred, ShouldResemble, y)
		})

		Convey("And probabilities are ordered by sorted class", func() {
			proba, err := clf.PredictProba(learn.FromDense([][]float64{{0, 1}}))
			So(err, ShouldBeNil)
			So(proba[0][0]+proba[0][1], ShouldAlmostEqual, 1.0, 1e-12)
			So(proba[0][1], ShouldBeGreaterThan, 0.5)
		})
	})

	Convey("Given an iteration budget too small to converge", t, func() {
		x := learn.FromDense([][]float64{
			{1.0, 0.0}, {0.9, 0.1}, {0.8, 0.0},
			{0.0, 1.0}, {0.1, 0.9}, {0.0, 0.8},
		})
		y := []string{"Negative", "Negative", "Negative", "Positive", "Positive", "Positive"}
		clf := linear.New(linear.WithC(10), linear.WithMaxIter(1))

		Convey("Then the fit succeeds but reports the early stop", func() {
			So(clf.Fit(context.Background(), x, y), ShouldBeNil)
			So(clf.Status(), ShouldEqual, optimize.IterationLimit)
			So(clf.ConvergenceErr(), ShouldNotBeNil)
			So(clf.ConvergenceErr().Error(), ShouldContainSubstring, "maximum number of major iterations")
		})
	})

	Convey("Given three classes", t, func() {
		x := learn.FromDense([][]float64{
			{1, 0, 0}, {0.9, 0.1, 0}, {0, 1, 0}, {0.1, 0.9, 0}, {0, 0, 1}, {0, 0.1, 0.9},
		})
		y := []string{"a", "a", "b", "b", "c", "c"}
		clf := linear.New(linear.WithC(10), linear.WithMaxIter(200))

		Convey("Then the multinomial model recovers every class", func() {
			So(clf.Fit(context.Background(), x, y), ShouldBeNil)
			pred, err := clf.Predict(x)
			So(err, ShouldBeNil)
			So(pred, ShouldResemble, y)

			proba, _ := clf.PredictProba(x)
			So(proba[0], ShouldHaveLength, 3)
		})
	})

	Convey("Given misuse", t, func() {
		clf := linear.New()

		Convey("Then predicting before fitting fails", func() {
			_, err := clf.Predict(learn.FromDense([][]float64{{1}}))
			So(errors.Is(err, learn.ErrNotFitted), ShouldBeTrue)
		})

		Convey("And mismatched labels are rejected", func() {
			err := clf.Fit(context.Background(), learn.FromDense([][]float64{{1}, {2}}), []string{"a"})
			So(errors.Is(err, learn.ErrDimensionMismatch), ShouldBeTrue)
		})
	})
}
