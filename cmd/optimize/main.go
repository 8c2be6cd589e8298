package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/snakevo/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	generations := flag.Int("generations", 40, "Generations evolved per evaluation")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()

	// Generate seeds for evaluation
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *generations, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation; seeds run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		// Denormalize and clamp to get actual parameter values
		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = append([]float64(nil), clamped...)
		}

		quality := evaluator.LastQuality()
		row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", fitness), fmt.Sprintf("%.4f", quality)}
		for _, v := range clamped {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		logWriter.Write(row)
		logWriter.Flush()

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: fitness=%.1f quality=%.2f (best=%.1f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, fitness, quality, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, generations per run: %d\n", *seeds, *generations)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best fitness: %.1f\n", bestFitness)

	if bestParams == nil {
		return
	}

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.6f\n", spec.Name, spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	if err := params.ApplyToConfig(bestCfg, bestParams); err != nil {
		log.Fatalf("best parameters rejected: %v", err)
	}

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	// Save hall of fame from best run
	if hof := evaluator.BestHallOfFame(); hof != nil {
		hofPath := filepath.Join(*outputDir, "hall_of_fame.json")
		hofData, err := hof.MarshalJSON()
		if err != nil {
			log.Printf("failed to marshal hall of fame: %v", err)
		} else if err := os.WriteFile(hofPath, hofData, 0644); err != nil {
			log.Printf("failed to write hall of fame: %v", err)
		} else {
			fmt.Printf("Hall of fame saved to: %s\n", hofPath)
		}
	}
}
