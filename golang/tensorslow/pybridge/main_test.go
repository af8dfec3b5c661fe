// SPDX-License-Identifier: Apache-2.0

package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarstars/tensorslow/golang/tensorslow/tsl"
)

func TestSaveDivergedModelKeepsExistingFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "model.json")

	converged := tsl.NewFittedModel(tsl.DescentResult{Theta: tsl.NewMatrix(2, 1, []float64{1, 2}), State: tsl.Converged})
	good := storeModel(&converged)
	defer delete(models, good)
	require.Equal(t, 0, saveModel(good, fileName))
	before, err := os.ReadFile(fileName)
	require.NoError(t, err)

	diverged := tsl.NewFittedModel(tsl.DescentResult{Theta: tsl.NewMatrix(2, 1, []float64{math.NaN(), 1}), State: tsl.Diverged})
	bad := storeModel(&diverged)
	defer delete(models, bad)
	assert.Equal(t, 2, saveModel(bad, fileName))
	assert.NotEmpty(t, getLastError())

	after, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	loaded := loadModel(fileName)
	require.NotZero(t, loaded)
	defer delete(models, loaded)
	assert.Empty(t, getLastError())
	assert.Equal(t, []float64{1, 2}, models[loaded].Theta)
}

func TestSaveModelRecoversFromPanic(t *testing.T) {
	broken := storeModel(nil)
	defer delete(models, broken)

	assert.Equal(t, 5, saveModel(broken, filepath.Join(t.TempDir(), "model.json")))
	assert.NotEmpty(t, getLastError())
}

func TestUnknownHandleAndMissingFile(t *testing.T) {
	assert.Equal(t, 1, saveModel(0, filepath.Join(t.TempDir(), "model.json")))
	assert.Equal(t, "invalid model handle", getLastError())

	assert.Zero(t, loadModel(filepath.Join(t.TempDir(), "missing.json")))
	assert.NotEmpty(t, getLastError())
}
