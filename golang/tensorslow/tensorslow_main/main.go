package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/tarstars/tensorslow/golang/tensorslow/tsl"
)

func decodeConfig(srcConfig string, out interface{}) {
	file, err := os.Open(srcConfig)
	tsl.HandleError(err)
	defer func() { tsl.HandleError(file.Close()) }()

	decoder := json.NewDecoder(file)
	tsl.HandleError(decoder.Decode(out))
}

func readMatrix(fileName string) *tsl.Matrix {
	log.Print("\ttry to load <", fileName, ">")
	m, err := tsl.ReadNpy(fileName)
	tsl.HandleError(err)
	return m
}

type TrainConfig struct {
	FileNameFeatures      string  `json:"filename_features"`
	FileNameTarget        string  `json:"filename_target"`
	FileNameModel         string  `json:"filename_model"`
	FileNameLearningCurve string  `json:"filename_learning_curve"`
	LearningRate          float64 `json:"learning_rate"`
	Threshold             float64 `json:"threshold"`
	MaxIterations         int     `json:"max_iterations"`
	LegacyThreshold       bool    `json:"legacy_threshold"`
	LogEvery              int     `json:"log_every"`
}

func (config TrainConfig) descentParams() tsl.DescentParams {
	params := tsl.DescentParams{
		LearningRate:  config.LearningRate,
		Threshold:     config.Threshold,
		MaxIterations: config.MaxIterations,
		LogEvery:      config.LogEvery,
		RecordCurve:   config.FileNameLearningCurve != "",
	}
	if config.LegacyThreshold {
		params.ThresholdMode = tsl.LegacyThreshold
	}
	return params
}

func train(srcConfig string) {
	var trainConfig TrainConfig
	decodeConfig(srcConfig, &trainConfig)

	model := tsl.NewLinearModel(readMatrix(trainConfig.FileNameFeatures), readMatrix(trainConfig.FileNameTarget))
	result := tsl.Minimize(context.Background(), model, trainConfig.descentParams())
	log.Print("descent ", result.State, " after ", result.Iterations, " iterations, gradient norm = ", result.Norm)
	log.Print("theta = ", result.Theta)

	if result.State == tsl.Diverged {
		log.Print("the learning rate ", trainConfig.LearningRate, " is too large, the model is not saved")
		return
	}

	tsl.HandleError(tsl.NewFittedModel(result).Save(trainConfig.FileNameModel))
	if trainConfig.FileNameLearningCurve != "" {
		tsl.HandleError(tsl.DumpLearningCurve(trainConfig.FileNameLearningCurve, trainConfig.FileNameFeatures, result.LearningCurve))
	}
}

type PredictConfig struct {
	FileNameFeatures   string `json:"filename_features"`
	FileNameModel      string `json:"filename_model"`
	FileNamePrediction string `json:"filename_target"`
}

func predict(srcConfig string) {
	var predictConfig PredictConfig
	decodeConfig(srcConfig, &predictConfig)

	features := readMatrix(predictConfig.FileNameFeatures)
	fitted, err := tsl.LoadModel(predictConfig.FileNameModel)
	tsl.HandleError(err)

	_, w := features.Dims()
	if w+1 != fitted.FeaturesCount {
		log.Panicf("the model expects %d features, the data has %d", fitted.FeaturesCount-1, w)
	}

	tsl.HandleError(tsl.WriteNpy(predictConfig.FileNamePrediction, fitted.Predict(features)))
}

type GraphConfig struct {
	FileNameFeatures string `json:"filename_features"`
	FileNameTarget   string `json:"filename_target"`
	FigureType       string `json:"figure_type"`
	FileNameGraph    string `json:"filename_graph"`
}

func graph(srcConfig string) {
	var graphConfig GraphConfig
	decodeConfig(srcConfig, &graphConfig)

	model := tsl.NewLinearModel(readMatrix(graphConfig.FileNameFeatures), readMatrix(graphConfig.FileNameTarget))
	tsl.HandleError(model.RenderGraphFile(graphConfig.FileNameGraph, graphConfig.FigureType))
}

func demo(string) {
	m1 := tsl.NewMatrix(2, 2, []float64{1, 3, 2, 4})
	fmt.Println(m1)
	m2 := tsl.NewMatrix(2, 1, []float64{5, 6})
	fmt.Println(m2)
	fmt.Println(m1.Mul(m2))

	rowMat := tsl.NewMatrix(1, 3, []float64{1, 2, 3})
	colMat := tsl.NewMatrix(3, 1, []float64{1, 2, 3})
	fmt.Println(rowMat.Mul(colMat))
	fmt.Println(rowMat.T())
	fmt.Println(rowMat.ScaleInPlace(2))
	fmt.Println(colMat.AppendColsInPlace(tsl.NewMatrix(3, 1, []float64{4, 5, 6})))

	x := tsl.NewMatrix(7, 1, []float64{1.7, 1.5, 2.8, 5, 1.3, 2.2, 1.3})
	y := tsl.NewMatrix(7, 1, []float64{368, 340, 665, 954, 331, 556, 376})
	model := tsl.NewLinearModel(x, y)
	theta := tsl.GradientDescent(model, 0.01, 1e-2)
	fmt.Println(theta)
	fmt.Println("rmse", tsl.Rmse(y, model.Predict(x, theta)))
}

func main() {
	runMode := flag.String("mode", "demo", "you can select either 'train', 'predict', 'graph' or 'demo' modes")
	config := flag.String("config", "tensorslow_config.json", "a config file for the run of the program")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	flag.Parse()

	modes := map[string]func(string){
		"train":   train,
		"predict": predict,
		"graph":   graph,
		"demo":    demo,
	}
	run, ok := modes[*runMode]
	if !ok {
		log.Fatalf("unknown mode %q", *runMode)
	}
	run(*config)

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		tsl.HandleError(err)
		defer func() { tsl.HandleError(f.Close()) }()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
