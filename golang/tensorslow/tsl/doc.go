// Package tsl is a small dense matrix library with a linear regression
// trained by batch gradient descent.
//
// Matrices are float64 and column-major. All operations return new values,
// except ScaleInPlace and AppendColsInPlace which modify their receiver.
// Shape errors are programmer errors and panic.
//
// Usage:
//
//	model := tsl.NewLinearModel(x, y)
//	theta := tsl.GradientDescent(model, 0.01, 1e-2)
//
//	result := tsl.Minimize(ctx, model, tsl.DescentParams{
//		LearningRate:  0.01,
//		Threshold:     1e-2,
//		MaxIterations: 100000,
//	})
//
// The last element of theta is the bias.
package tsl
