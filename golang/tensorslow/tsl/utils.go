package tsl

import "log"

//HandleError panics with the error when it is not nil.
func HandleError(err error) {
	if err != nil {
		log.Panic(err)
	}
}

//Height returns the number of rows of a matrix.
func Height(m *Matrix) int {
	h, _ := m.Dims()
	return h
}
