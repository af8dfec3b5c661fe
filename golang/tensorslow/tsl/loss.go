package tsl

import (
	"log"
	"math"
)

//Rmse calculates the root mean squared error between two columns.
func Rmse(target, prediction *Matrix) float64 {
	if Height(target) != Height(prediction) {
		log.Panicf("target has %d rows, prediction has %d", Height(target), Height(prediction))
	}
	h := Height(target)
	if h == 0 {
		return 0
	}
	return target.Sub(prediction).L2() / math.Sqrt(float64(h))
}
