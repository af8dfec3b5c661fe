package tsl

import "log"

//Model is anything that can provide a loss gradient for a parameter column.
type Model interface {
	Gradient(theta *Matrix) *Matrix
	FeaturesCount() int
}

//LinearModel is a linear regression with an implicit bias term.
//The design matrix and its transpose are computed once and reused by every Gradient call.
type LinearModel struct {
	x  *Matrix // features with a trailing column of ones
	y  *Matrix
	xT *Matrix
}

//appendOnesToX returns a copy of x with a column of ones appended as the last column.
func appendOnesToX(x *Matrix) *Matrix {
	return x.Clone().AppendColsInPlace(Ones(Height(x), 1))
}

//NewLinearModel creates a model for the features x and the target column y.
func NewLinearModel(x, y *Matrix) *LinearModel {
	if Height(x) != Height(y) {
		log.Panicf("features have %d rows, target has %d", Height(x), Height(y))
	}
	if _, w := y.Dims(); w != 1 {
		log.Panicf("target should be a column, got %d columns", w)
	}
	design := appendOnesToX(x)
	return &LinearModel{x: design, y: y.Clone(), xT: design.T()}
}

//Gradient returns X'ᵗ·X'·theta − X'ᵗ·y, the gradient of the half squared error.
func (model *LinearModel) Gradient(theta *Matrix) *Matrix {
	model.checkTheta(theta)
	return model.xT.Mul(model.x).Mul(theta).Sub(model.xT.Mul(model.y))
}

//FeaturesCount returns the number of parameters including the bias.
func (model *LinearModel) FeaturesCount() int {
	_, w := model.x.Dims()
	return w
}

//Predict applies theta to new features. The bias is the last element of theta.
func (model *LinearModel) Predict(x, theta *Matrix) *Matrix {
	model.checkTheta(theta)
	return appendOnesToX(x).Mul(theta)
}

//Residuals returns X'·theta − y on the training data.
func (model *LinearModel) Residuals(theta *Matrix) *Matrix {
	model.checkTheta(theta)
	return model.x.Mul(theta).Sub(model.y)
}

//Loss returns the half squared error of theta on the training data.
func (model *LinearModel) Loss(theta *Matrix) float64 {
	norm := model.Residuals(theta).L2()
	return norm * norm / 2
}

func (model *LinearModel) checkTheta(theta *Matrix) {
	h, w := theta.Dims()
	if h != model.FeaturesCount() || w != 1 {
		log.Panicf("theta should be %dx1, got %dx%d", model.FeaturesCount(), h, w)
	}
}
