package tsl_test

import (
	"context"
	"fmt"

	"github.com/tarstars/tensorslow/golang/tensorslow/tsl"
)

func ExampleMatrix() {
	m1 := tsl.NewMatrix(2, 2, []float64{1, 3, 2, 4})
	fmt.Println(m1)

	m2 := tsl.NewMatrix(2, 1, []float64{5, 6})
	fmt.Println(m1.Mul(m2))

	rowMat := tsl.NewMatrix(1, 3, []float64{1, 2, 3})
	colMat := tsl.NewMatrix(3, 1, []float64{1, 2, 3})
	fmt.Println(rowMat.Mul(colMat))
	fmt.Println(rowMat.T())
	fmt.Println(rowMat.ScaleInPlace(2))

	colMat2 := tsl.NewMatrix(3, 1, []float64{4, 5, 6})
	fmt.Println(colMat.AppendColsInPlace(colMat2))
	// Output:
	// [1 2 | 3 4]
	// [17 | 39]
	// [14]
	// [1 | 2 | 3]
	// [2 4 6]
	// [1 4 | 2 5 | 3 6]
}

func ExampleMinimize() {
	x := tsl.NewMatrix(7, 1, []float64{1.7, 1.5, 2.8, 5, 1.3, 2.2, 1.3})
	y := tsl.NewMatrix(7, 1, []float64{368, 340, 665, 954, 331, 556, 376})
	model := tsl.NewLinearModel(x, y)

	result := tsl.Minimize(context.Background(), model, tsl.DescentParams{
		LearningRate: 0.01,
		Threshold:    1e-2,
	})
	fmt.Println(result.State)
	fmt.Printf("weight %.1f, bias %.1f\n", result.Theta.At(0, 0), result.Theta.At(1, 0))
	// Output:
	// converged
	// weight 171.5, bias 125.8
}
