package main

import (
	"fmt"

	"github.com/rwcarlsen/optimum/testfunctions"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available benchmark problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, fn := range testfunctions.All {
			low, high := fn.Bounds()
			_, optCost := fn.Optimum()
			fmt.Printf("%-18s bounds=[%g,%g]  optimum_cost=%g\n", fn.Name(), low, high, optCost)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
