package main

import (
	"fmt"

	"github.com/rwcarlsen/optimum/cmd/optimum/config"
	"github.com/rwcarlsen/optimum/checkpoint/filecheckpoint"
	"github.com/rwcarlsen/optimum/executor"
	"github.com/rwcarlsen/optimum/observer"
	"github.com/rwcarlsen/optimum/observer/slogobserver"
	"github.com/rwcarlsen/optimum/solver/pso"
	"github.com/rwcarlsen/optimum/state"
	"github.com/rwcarlsen/optimum/testfunctions"
	"github.com/spf13/cobra"
)

var (
	flagProblem         string
	flagDim             int
	flagIters           uint64
	flagParticles       int
	flagSeed            int64
	flagCheckpointPath  string
	flagCheckpointEvery uint64
	flagInertia         float64
	flagCognition       float64
	flagSocial          float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run particle swarm optimization against a benchmark problem",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagProblem, "problem", "", "Benchmark problem: sphere, ackley, styblinski, rosenbrock")
	runCmd.Flags().IntVar(&flagDim, "dim", 0, "Problem dimensionality (ignored by ackley, which is fixed at 2)")
	runCmd.Flags().Uint64Var(&flagIters, "iters", 0, "Max iterations")
	runCmd.Flags().IntVar(&flagParticles, "particles", 0, "Swarm size")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed")
	runCmd.Flags().StringVar(&flagCheckpointPath, "checkpoint", "", "Checkpoint file path (disabled if empty)")
	runCmd.Flags().Uint64Var(&flagCheckpointEvery, "checkpoint-every", 0, "Save a checkpoint every N iterations")
	runCmd.Flags().Float64Var(&flagInertia, "inertia", 0, "Velocity inertia weight")
	runCmd.Flags().Float64Var(&flagCognition, "cognition", 0, "Personal-best pull weight")
	runCmd.Flags().Float64Var(&flagSocial, "social", 0, "Swarm-best pull weight")
	rootCmd.AddCommand(runCmd)
}

// runSettings merges explicit flags over config.Global, so a bare `optimum
// run` falls back entirely to the loaded config file.
type runSettings struct {
	Problem         string
	Dim             int
	Iters           uint64
	Particles       int
	Seed            int64
	CheckpointPath  string
	CheckpointEvery uint64
	Inertia         float64
	Cognition       float64
	Social          float64
}

func resolveSettings(cmd *cobra.Command) runSettings {
	s := runSettings{
		Problem:         config.Global.Problem,
		Dim:             config.Global.Dim,
		Iters:           config.Global.Iters,
		Particles:       config.Global.Particles,
		Seed:            config.Global.Seed,
		CheckpointPath:  config.Global.Checkpoint,
		CheckpointEvery: config.Global.CheckpointN,
		Inertia:         config.Global.Inertia,
		Cognition:       config.Global.Cognition,
		Social:          config.Global.Social,
	}
	flags := cmd.Flags()
	if flags.Changed("problem") {
		s.Problem = flagProblem
	}
	if flags.Changed("dim") {
		s.Dim = flagDim
	}
	if flags.Changed("iters") {
		s.Iters = flagIters
	}
	if flags.Changed("particles") {
		s.Particles = flagParticles
	}
	if flags.Changed("seed") {
		s.Seed = flagSeed
	}
	if flags.Changed("checkpoint") {
		s.CheckpointPath = flagCheckpointPath
	}
	if flags.Changed("checkpoint-every") {
		s.CheckpointEvery = flagCheckpointEvery
	}
	if flags.Changed("inertia") {
		s.Inertia = flagInertia
	}
	if flags.Changed("cognition") {
		s.Cognition = flagCognition
	}
	if flags.Changed("social") {
		s.Social = flagSocial
	}
	return s
}

// resolveProblem builds the benchmark function named by settings.Problem
// at the requested dimensionality.
func resolveProblem(s runSettings) (testfunctions.Func, error) {
	dim := s.Dim
	if dim <= 0 {
		dim = 2
	}
	switch s.Problem {
	case "sphere", "":
		return testfunctions.Sphere{NDim: dim}, nil
	case "ackley":
		return testfunctions.Ackley{}, nil
	case "styblinski":
		return testfunctions.Styblinski{NDim: dim}, nil
	case "rosenbrock":
		return testfunctions.Rosenbrock{NDim: dim}, nil
	default:
		return nil, fmt.Errorf("unknown problem %q (want sphere, ackley, styblinski, rosenbrock)", s.Problem)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	s := resolveSettings(cmd)
	prob, err := resolveProblem(s)
	if err != nil {
		return err
	}
	return runPSO(prob, s)
}

// runPSO builds and drives a PSO run against prob. O is left as the
// testfunctions.Func interface rather than a concrete benchmark type so
// one instantiation serves every --problem choice.
func runPSO(prob testfunctions.Func, s runSettings) error {
	optPos, _ := prob.Optimum()
	template := make(testfunctions.Point, len(optPos))
	low, high := prob.Bounds()

	sw := pso.New[testfunctions.Func, testfunctions.Point, float64]()
	sw.SetTemplate(template)
	sw.Low, sw.High = low, high
	if s.Particles > 0 {
		sw.NumParticles = s.Particles
	}
	if s.Inertia > 0 {
		sw.Inertia = s.Inertia
	}
	if s.Cognition > 0 {
		sw.Cognition = s.Cognition
	}
	if s.Social > 0 {
		sw.Social = s.Social
	}
	sw.WithSeed(s.Seed)

	maxIters := s.Iters
	if maxIters == 0 {
		maxIters = 100
	}
	st := state.NewPopulation[testfunctions.Point, float64]().WithMaxIters(maxIters)

	type St = *state.PopulationState[testfunctions.Point, float64]
	ex := executor.New[testfunctions.Func, *pso.PSO[testfunctions.Func, testfunctions.Point, float64], St](prob, sw, st)
	ex.AddObserver(slogobserver.New[St](logger), observer.NewBestMode())

	if s.CheckpointPath != "" {
		cp := filecheckpoint.New[*pso.PSO[testfunctions.Func, testfunctions.Point, float64], St](s.CheckpointPath)
		ex.Checkpointing(cp, checkpointEveryMode(s.CheckpointEvery))
		logger.Info("checkpointing enabled", "path", s.CheckpointPath, "run_id", cp.RunID())
	}

	result, err := ex.Run()
	if err != nil {
		return err
	}

	fmt.Println(executor.Summary(result))
	fmt.Printf("best_param=%v\n", result.State.BestParam)
	return nil
}
