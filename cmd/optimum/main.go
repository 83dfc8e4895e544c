// Command optimum runs the particle-swarm optimizer against the benchmark
// functions in testfunctions, replacing the
// teacher's single-file cmd/eggholder.go example with a cobra command
// tree grounded on CWBudde-MayFlyCircleFit/cmd.
package main

import (
	"log"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println("Error:", err)
		os.Exit(1)
	}
}
