package main

import "github.com/rwcarlsen/optimum/checkpoint"

func checkpointEveryMode(n uint64) checkpoint.Mode {
	if n == 0 {
		return checkpoint.EveryMode(10)
	}
	return checkpoint.EveryMode(n)
}
