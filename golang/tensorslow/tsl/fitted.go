package tsl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//ErrEmptyModel is returned when a stored model has no parameters.
var ErrEmptyModel = errors.New("tsl: model has no parameters")

//FittedModel is the serializable result of a descent run.
type FittedModel struct {
	Theta         []float64
	FeaturesCount int
	State         string
	Iterations    int
	LearningCurve []float64 `json:",omitempty"`
}

//NewFittedModel captures a descent result.
func NewFittedModel(result DescentResult) FittedModel {
	return FittedModel{
		Theta:         result.Theta.Elements(),
		FeaturesCount: Height(result.Theta),
		State:         result.State.String(),
		Iterations:    result.Iterations,
		LearningCurve: result.LearningCurve,
	}
}

//ThetaMatrix returns the parameters as a column.
func (fitted FittedModel) ThetaMatrix() *Matrix {
	return NewMatrix(len(fitted.Theta), 1, fitted.Theta)
}

//Predict applies the stored parameters to features. The bias is the last parameter.
func (fitted FittedModel) Predict(x *Matrix) *Matrix {
	return appendOnesToX(x).Mul(fitted.ThetaMatrix())
}

//Save stores the model as indented json.
//The file is not touched when the model can't be encoded, e.g. a diverged theta holding NaN.
func (fitted FittedModel) Save(filename string) error {
	modelByteRepr, err := json.MarshalIndent(fitted, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model for %s: %w", filename, err)
	}

	dest, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("can't open file %s to write: %w", filename, err)
	}
	defer func() { HandleError(dest.Close()) }()

	_, err = dest.Write(modelByteRepr)
	return err
}

//LoadModel reads a model stored by Save.
func LoadModel(filename string) (fitted FittedModel, err error) {
	source, err := os.Open(filename)
	if err != nil {
		return fitted, fmt.Errorf("can't open model %s: %w", filename, err)
	}
	defer func() { HandleError(source.Close()) }()

	decoder := json.NewDecoder(source)
	if err = decoder.Decode(&fitted); err != nil {
		return fitted, fmt.Errorf("decode model %s: %w", filename, err)
	}
	if len(fitted.Theta) == 0 {
		return fitted, ErrEmptyModel
	}
	if fitted.FeaturesCount != len(fitted.Theta) {
		return fitted, fmt.Errorf("model %s declares %d features but stores %d parameters", filename, fitted.FeaturesCount, len(fitted.Theta))
	}
	return fitted, nil
}

//LearningCurveDump is the json layout of a dumped learning curve.
type LearningCurveDump struct {
	Title  string
	Values []float64
}

//DumpLearningCurve stores gradient norms per iteration as json.
func DumpLearningCurve(filename, title string, curve []float64) error {
	bytesResult, err := json.MarshalIndent(LearningCurveDump{Title: title, Values: curve}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode learning curve for %s: %w", filename, err)
	}

	destination, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("can't open file %s to write: %w", filename, err)
	}
	defer func() { HandleError(destination.Close()) }()
	_, err = destination.Write(bytesResult)
	return err
}
