package main

import (
	"testing"

	"github.com/rwcarlsen/optimum/testfunctions"
)

func TestResolveProblem(t *testing.T) {
	cases := []struct {
		name    string
		problem string
		dim     int
		want    string
	}{
		{"sphere default dim", "sphere", 0, "Sphere_2D"},
		{"sphere explicit dim", "sphere", 5, "Sphere_5D"},
		{"ackley ignores dim", "ackley", 7, "Ackley"},
		{"rosenbrock", "rosenbrock", 3, "Rosenbrock_3D"},
		{"styblinski", "styblinski", 4, "Styblinski_4D"},
		{"empty defaults to sphere", "", 0, "Sphere_2D"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fn, err := resolveProblem(runSettings{Problem: c.problem, Dim: c.dim})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := fn.Name(); got != c.want {
				t.Errorf("Name() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestResolveProblemUnknown(t *testing.T) {
	if _, err := resolveProblem(runSettings{Problem: "not-a-real-function"}); err == nil {
		t.Fatal("expected an error for an unknown problem name")
	}
}

func TestResolveSettingsFlagOverridesConfig(t *testing.T) {
	cmd := runCmd
	if err := cmd.Flags().Set("problem", "rosenbrock"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := cmd.Flags().Set("dim", "4"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	defer func() {
		cmd.Flags().Set("problem", "")
		cmd.Flags().Set("dim", "0")
	}()

	s := resolveSettings(cmd)
	if s.Problem != "rosenbrock" || s.Dim != 4 {
		t.Fatalf("resolveSettings = %+v, want problem=rosenbrock dim=4", s)
	}
}

func TestResolvedProblemImplementsCostFunction(t *testing.T) {
	fn, err := resolveProblem(runSettings{Problem: "sphere", Dim: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var _ testfunctions.Func = fn
	cost, err := fn.Cost(testfunctions.Point{1, 2, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != 9 {
		t.Errorf("Cost({1,2,2}) = %v, want 9", cost)
	}
}
