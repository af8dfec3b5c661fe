// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"unsafe"

	"github.com/tarstars/tensorslow/golang/tensorslow/tsl"
)

var (
	handleMu   sync.Mutex
	nextHandle uint64 = 1
	models            = make(map[uint64]*tsl.FittedModel)

	lastErrorMu sync.Mutex
	lastError   string

	logSilenceOnce sync.Once
)

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func getLastError() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError
}

func storeModel(m *tsl.FittedModel) uint64 {
	handleMu.Lock()
	defer handleMu.Unlock()
	handle := nextHandle
	models[handle] = m
	nextHandle++
	return handle
}

func fetchModel(handle uint64) (*tsl.FittedModel, error) {
	handleMu.Lock()
	defer handleMu.Unlock()
	model, ok := models[handle]
	if !ok {
		return nil, errors.New("invalid model handle")
	}
	return model, nil
}

// recoverInto turns a precondition panic of the library into the last error.
func recoverInto(code *C.int, failure C.int) {
	if r := recover(); r != nil {
		setLastError(fmt.Errorf("%v", r))
		*code = failure
	}
}

func recoverCode(code *int, failure int) {
	if r := recover(); r != nil {
		setLastError(fmt.Errorf("%v", r))
		*code = failure
	}
}

//export FreeModel
func FreeModel(handle C.ulonglong) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(models, uint64(handle))
}

func sliceFromPtr(ptr *C.double, length int) ([]float64, error) {
	if length < 0 {
		return nil, errors.New("negative length")
	}
	if length == 0 {
		return nil, nil
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty slice")
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length), nil
}

// buildMatrix copies a row-major C array, the numpy default layout, into a matrix.
func buildMatrix(ptr *C.double, rows, cols C.int) (*tsl.Matrix, error) {
	r := int(rows)
	c := int(cols)
	if r <= 0 || c <= 0 {
		return nil, errors.New("invalid matrix dimensions")
	}
	data, err := sliceFromPtr(ptr, r*c)
	if err != nil {
		return nil, err
	}
	return tsl.NewMatrixFromRowMajor(r, c, data), nil
}

//export FitLinearModel
func FitLinearModel(
	featuresPtr *C.double,
	rows C.int,
	cols C.int,
	targetPtr *C.double,
	learningRate C.double,
	threshold C.double,
	maxIterations C.int,
	legacyThreshold C.int,
) (handle C.ulonglong) {
	setLastError(nil)
	logSilenceOnce.Do(func() {
		log.SetOutput(io.Discard)
	})
	defer func() {
		if r := recover(); r != nil {
			setLastError(fmt.Errorf("%v", r))
			handle = 0
		}
	}()

	features, err := buildMatrix(featuresPtr, rows, cols)
	if err != nil {
		setLastError(err)
		return 0
	}

	target, err := buildMatrix(targetPtr, rows, 1)
	if err != nil {
		setLastError(err)
		return 0
	}

	params := tsl.DescentParams{
		LearningRate:  float64(learningRate),
		Threshold:     float64(threshold),
		MaxIterations: int(maxIterations),
	}
	if legacyThreshold != 0 {
		params.ThresholdMode = tsl.LegacyThreshold
	}

	result := tsl.Minimize(context.Background(), tsl.NewLinearModel(features, target), params)
	fitted := tsl.NewFittedModel(result)
	if result.State == tsl.Diverged {
		setLastError(errors.New("gradient descent diverged"))
	}
	return C.ulonglong(storeModel(&fitted))
}

//export GetTheta
func GetTheta(handle C.ulonglong, outputPtr *C.double, length C.int) (code C.int) {
	setLastError(nil)
	defer recoverInto(&code, 5)
	fitted, err := fetchModel(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}
	if int(length) != len(fitted.Theta) {
		setLastError(fmt.Errorf("theta has %d elements, buffer has %d", len(fitted.Theta), int(length)))
		return 2
	}
	outSlice, err := sliceFromPtr(outputPtr, int(length))
	if err != nil {
		setLastError(err)
		return 3
	}
	copy(outSlice, fitted.Theta)
	return 0
}

//export PredictLinear
func PredictLinear(
	handle C.ulonglong,
	featuresPtr *C.double,
	rows C.int,
	cols C.int,
	outputPtr *C.double,
) (code C.int) {
	setLastError(nil)
	defer recoverInto(&code, 5)

	fitted, err := fetchModel(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}

	features, err := buildMatrix(featuresPtr, rows, cols)
	if err != nil {
		setLastError(err)
		return 2
	}

	prediction := fitted.Predict(features)

	outSlice, err := sliceFromPtr(outputPtr, int(rows))
	if err != nil {
		setLastError(err)
		return 3
	}
	copy(outSlice, prediction.Col(0))
	return 0
}

//export SaveModel
func SaveModel(handle C.ulonglong, path *C.char) C.int {
	return C.int(saveModel(uint64(handle), C.GoString(path)))
}

func saveModel(handle uint64, path string) (code int) {
	setLastError(nil)
	defer recoverCode(&code, 5)
	fitted, err := fetchModel(handle)
	if err != nil {
		setLastError(err)
		return 1
	}
	if err := fitted.Save(path); err != nil {
		setLastError(err)
		return 2
	}
	return 0
}

//export LoadModel
func LoadModel(path *C.char) C.ulonglong {
	return C.ulonglong(loadModel(C.GoString(path)))
}

func loadModel(path string) (handle uint64) {
	setLastError(nil)
	defer func() {
		if r := recover(); r != nil {
			setLastError(fmt.Errorf("%v", r))
			handle = 0
		}
	}()
	fitted, err := tsl.LoadModel(path)
	if err != nil {
		setLastError(err)
		return 0
	}
	return storeModel(&fitted)
}

//export GetLastError
func GetLastError() *C.char {
	errStr := getLastError()
	if errStr == "" {
		return nil
	}
	return C.CString(errStr)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
