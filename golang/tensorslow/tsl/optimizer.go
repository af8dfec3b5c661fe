package tsl

import (
	"context"
	"log"
	"math"
)

const (
	//DefaultMaxIterations bounds the descent when DescentParams.MaxIterations is zero.
	DefaultMaxIterations = 1000000

	//LegacyTolerance is the stop threshold used by LegacyThreshold mode.
	LegacyTolerance = 10e-2
)

//ThresholdMode selects which tolerance stops the descent.
type ThresholdMode int

const (
	//CallerThreshold compares the gradient norm with DescentParams.Threshold.
	CallerThreshold ThresholdMode = iota
	//LegacyThreshold ignores DescentParams.Threshold and compares with LegacyTolerance.
	LegacyThreshold
)

//DescentState is the terminal state of a descent run.
type DescentState int

const (
	//Converged means the gradient norm dropped to the threshold.
	Converged DescentState = iota
	//Diverged means the gradient norm became NaN or infinite.
	Diverged
	//IterationLimit means MaxIterations updates were made without convergence.
	IterationLimit
	//Cancelled means the context was done before the descent stopped.
	Cancelled
)

func (state DescentState) String() string {
	switch state {
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	case IterationLimit:
		return "iteration_limit"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

//DescentParams collect arguments of the gradient descent.
type DescentParams struct {
	LearningRate  float64
	Threshold     float64
	MaxIterations int // 0 means DefaultMaxIterations, negative means no limit
	ThresholdMode ThresholdMode
	LogEvery      int  // log the norm every LogEvery iterations, 0 disables
	RecordCurve   bool // keep the gradient norm of every iteration
}

//DescentResult is the outcome of Minimize. Theta is returned in every state.
type DescentResult struct {
	Theta         *Matrix
	State         DescentState
	Iterations    int
	Norm          float64
	LearningCurve []float64
}

func (params DescentParams) tolerance() float64 {
	if params.ThresholdMode == LegacyThreshold {
		return LegacyTolerance
	}
	return params.Threshold
}

func (params DescentParams) iterationLimit() int {
	if params.MaxIterations == 0 {
		return DefaultMaxIterations
	}
	return params.MaxIterations
}

//GradientDescent fits the parameters of a model starting from zeros.
//It stops when the gradient norm is NaN, infinite or not greater than threshold
//and returns the current parameters in every case.
func GradientDescent(model Model, learningRate, threshold float64) *Matrix {
	return Minimize(context.Background(), model, DescentParams{
		LearningRate: learningRate,
		Threshold:    threshold,
	}).Theta
}

//Minimize runs the batch gradient descent described by params.
func Minimize(ctx context.Context, model Model, params DescentParams) (result DescentResult) {
	featuresCount := model.FeaturesCount()
	result.Theta = Zeros(featuresCount, 1)
	tolerance := params.tolerance()
	limit := params.iterationLimit()

	for {
		if err := ctx.Err(); err != nil {
			result.State = Cancelled
			return
		}

		gradient := model.Gradient(result.Theta)
		result.Norm = gradient.L2()
		if params.RecordCurve {
			result.LearningCurve = append(result.LearningCurve, result.Norm)
		}
		if params.LogEvery > 0 && result.Iterations%params.LogEvery == 0 {
			log.Printf("iteration %d, gradient norm %g\n", result.Iterations, result.Norm)
		}

		switch {
		case math.IsNaN(result.Norm) || math.IsInf(result.Norm, 0):
			result.State = Diverged
			return
		case result.Norm <= tolerance:
			result.State = Converged
			return
		case limit >= 0 && result.Iterations >= limit:
			result.State = IterationLimit
			return
		}

		result.Theta = result.Theta.Sub(gradient.ScaleInPlace(params.LearningRate))
		result.Iterations++
	}
}
