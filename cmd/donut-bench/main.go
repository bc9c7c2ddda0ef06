package main

import (
	"flag"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/torus"
	"github.com/lixenwraith/donut/vmath"
)

var framesFlag = flag.Int("frames", 1000, "Frames rendered by the quick timing run")

// === ACCURACY VERIFICATION ===

// rotorDrift steps a rotor n times and reports angle error and magnitude error against float math
func rotorDrift(step float64, n int) (angleErr, magErr float64) {
	d := vmath.NewRotor(step)
	r := vmath.RotorIdentity
	for i := 0; i < n; i++ {
		r = r.Step(d)
	}
	want := math.Remainder(step*float64(n), 2*math.Pi)
	return math.Abs(math.Remainder(r.Angle()-want, 2*math.Pi)), math.Abs(r.Magnitude() - 1)
}

func verifyAccuracy() {
	fmt.Println("=== Rotor Drift (angle-sum step with renormalization) ===")
	fmt.Println()
	fmt.Printf("%-8s %10s %16s %16s\n", "Axis", "Frames", "Angle error", "Magnitude error")
	fmt.Println(strings.Repeat("-", 53))

	axes := []struct {
		name string
		step float64
	}{
		{"A", parameter.StepA},
		{"B", parameter.StepB},
		{"tube", parameter.TubeStep},
		{"ring", parameter.RingStep},
	}
	for _, axis := range axes {
		for _, n := range []int{1, 100, 1000, 10000, 100000} {
			angleErr, magErr := rotorDrift(axis.step, n)
			fmt.Printf("%-8s %10d %16.3e %16.3e\n", axis.name, n, angleErr, magErr)
		}
	}

	fmt.Println()
	fmt.Println("=== Q10 Rotor Output vs math.Sin/Cos ===")
	fmt.Println()
	fmt.Printf("%10s %8s %8s %8s %8s\n", "Angle", "sin", "cos", "sin err", "cos err")
	fmt.Println(strings.Repeat("-", 46))

	for _, a := range []float64{0, math.Pi / 6, math.Pi / 4, math.Pi / 2, 2, math.Pi, 4.5} {
		s, c := vmath.NewRotor(a).Fixed()
		fmt.Printf("%10.4f %8d %8d %8d %8d\n", a, s, c,
			s-int(math.Round(math.Sin(a)*vmath.Scale)), c-int(math.Round(math.Cos(a)*vmath.Scale)))
	}
}

// === RENDER TIMING ===

func benchmarkRenderInto(r *torus.Renderer) func(b *testing.B) {
	return func(b *testing.B) {
		f := r.NewFrame()
		o := torus.Identity()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			o = r.RenderInto(f, o)
		}
	}
}

func main() {
	flag.Parse()

	fmt.Println("donut fixed-point kernel benchmark")
	fmt.Println("==================================")
	fmt.Println()

	verifyAccuracy()

	r, err := torus.New(torus.DefaultConfig())
	if err != nil {
		fmt.Printf("renderer: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("=== Running Benchmarks ===")
	fmt.Println("Run with: go test -bench=. -benchmem ./torus/ ./vmath/")
	fmt.Println()

	res := testing.Benchmark(benchmarkRenderInto(r))
	perFrame := float64(res.NsPerOp())
	fmt.Printf("RenderInto: %s\n", res)
	fmt.Printf("  %d samples per frame, %.1f ns per sample\n", r.Samples(), perFrame/float64(r.Samples()))
	if perFrame > 0 {
		fmt.Printf("  headroom at %d fps: %.0fx\n", parameter.DefaultFPS, 1e9/float64(parameter.DefaultFPS)/perFrame)
	}

	// Quick inline run for immediate results
	f := r.NewFrame()
	o := torus.Identity()
	lit := 0
	for i := 0; i < *framesFlag; i++ {
		o = r.RenderInto(f, o)
	}
	for _, g := range f.Glyphs {
		if g != torus.Background {
			lit++
		}
	}
	a, b := o.Angles()
	fmt.Printf("\nAfter %d frames: A=%.4f B=%.4f, %d of %d cells lit\n", *framesFlag, a, b, lit, len(f.Glyphs))
}
