// Package main provides the Crux CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crux-ml/crux/backend/cpu"
	"github.com/crux-ml/crux/linalg"
	"github.com/crux-ml/crux/tensor"
)

const version = "v0.1.0-dev"

func main() {
	root := &cobra.Command{
		Use:   "crux",
		Short: "Crux numeric array library",
	}

	root.AddCommand(versionCmd(), benchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("crux %s\n", version)
		},
	}
}

func benchCmd() *cobra.Command {
	var (
		size  int
		iters int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the cross-product pipeline on the CPU backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := cpu.New()
			a := tensor.Randn[float32](tensor.Shape{size, 3}, backend)
			b := tensor.Randn[float32](tensor.Shape{size, 3}, backend)

			out, err := linalg.Cross(a, b)
			if err != nil {
				return err
			}

			start := time.Now()
			for i := 0; i < iters; i++ {
				if _, err := linalg.CrossInto(out, a, b); err != nil {
					return err
				}
			}
			elapsed := time.Since(start)

			perCall := elapsed / time.Duration(iters)
			fmt.Printf("cross %dx3 on %s: %d iterations in %v (%v/call, %.1f Melem/s)\n",
				size, backend.Name(), iters, elapsed, perCall,
				float64(size*3)/perCall.Seconds()/1e6)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 1<<20, "number of 3-vectors per operand")
	cmd.Flags().IntVar(&iters, "iters", 10, "number of iterations")

	return cmd
}
