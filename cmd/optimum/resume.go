package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume [checkpoint-path]",
	Short: "Resume a run from a checkpoint file",
	Long: `resume re-runs the same problem/solver flags as the original "optimum
run" invocation, loading the (solver, state) snapshot from the given
checkpoint file instead of starting a fresh population. The problem and
its dimensionality must match what produced the checkpoint.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := resolveSettings(cmd)
		s.CheckpointPath = args[0]
		if s.CheckpointPath == "" {
			return fmt.Errorf("resume: no checkpoint path given")
		}

		prob, err := resolveProblem(s)
		if err != nil {
			return err
		}
		return runPSO(prob, s)
	},
}

func init() {
	resumeCmd.Flags().StringVar(&flagProblem, "problem", "", "Benchmark problem: sphere, ackley, styblinski, rosenbrock")
	resumeCmd.Flags().IntVar(&flagDim, "dim", 0, "Problem dimensionality")
	resumeCmd.Flags().Uint64Var(&flagIters, "iters", 0, "Max iterations")
	resumeCmd.Flags().IntVar(&flagParticles, "particles", 0, "Swarm size")
	resumeCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed")
	resumeCmd.Flags().Uint64Var(&flagCheckpointEvery, "checkpoint-every", 0, "Save a checkpoint every N iterations")
	rootCmd.AddCommand(resumeCmd)
}
