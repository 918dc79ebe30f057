package statz

import (
	"crypto/sha512"
	. "fmt"
	"github.com/klauspost/cpuid/v2"
	"github.com/minio/sha256-simd"
	"github.com/p7r0x7/crack512"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
	"golang.org/x/sys/cpu"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Statz times both crack512 backends over a real batch and sets them beside well-known hashing
// libraries fed the very same inputs. Staging costs of the parallel backend are part of its timing.

// Config controls how many times each row is run.
type Config struct {
	Iterations int         /* Timed runs averaged per row; default 100. */
	Warmup     int         /* Untimed runs before timing; 0 means 10, negative means none. */
	Workers    int         /* Parallel backend workers; below 1 means one per CPU. */
	Log        *zap.Logger /* Optional. */
}

// Timing is one row of a report.
type Timing struct {
	Name       string
	Mean       time.Duration
	Throughput float64 /* MB/s of padded blocks */
	CPB        float64 /* cycles per byte; 0 when no cycle counter is available */
}

// Report holds every row of a comparison.
type Report struct {
	Entries    int
	Bytes      int
	Iterations int
	Rows       []Timing
}

func (c Config) withDefaults() Config {
	if c.Iterations < 1 {
		c.Iterations = 100
	}
	if c.Warmup < 0 {
		c.Warmup = 0
	} else if c.Warmup == 0 {
		c.Warmup = 10
	}
	if c.Log == nil {
		c.Log = zap.NewNop()
	}
	return c
}

// Measure averages cfg.Iterations dispatches of blocks on b, after cfg.Warmup untimed ones.
func Measure(blocks []crack512.Block, b crack512.Backend, cfg Config) (Timing, error) {
	cfg = cfg.withDefaults()
	return measure("crack512 "+b.Name(), len(blocks)*crack512.BlockSize, cfg, func() error {
		_, err := crack512.Dispatch(blocks, b)
		return err
	})
}

type baseline struct {
	name string
	fn   func([]byte)
}

var baselines = [...]baseline{
	{"crypto/sha512", func(b []byte) { sha512.Sum512(b) }},
	{"github.com/minio/sha256-simd", func(b []byte) { sha256.Sum256(b) }},
	{"github.com/zeebo/blake3", func(b []byte) { blake3.Sum512(b) }},
	{"github.com/zeebo/xxh3", func(b []byte) { xxh3.Hash(b) }},
}

// Compare preprocesses inputs once and times the sequential backend, the parallel backend, and each
// baseline library over them.
func Compare(inputs [][]byte, cfg Config) (Report, error) {
	cfg = cfg.withDefaults()
	blocks, err := crack512.PreprocessAll(inputs)
	if err != nil {
		return Report{}, err
	}
	r := Report{Entries: len(inputs), Bytes: len(blocks) * crack512.BlockSize, Iterations: cfg.Iterations}

	for _, b := range []crack512.Backend{
		crack512.Sequential{},
		&crack512.Parallel{Workers: cfg.Workers, Log: cfg.Log},
	} {
		t, err := Measure(blocks, b, cfg)
		if err != nil {
			return Report{}, errors.WithMessage(err, b.Name())
		}
		cfg.Log.Debug("measured", zap.String("row", t.Name), zap.Duration("mean", t.Mean))
		r.Rows = append(r.Rows, t)
	}
	for _, bl := range baselines {
		fn := bl.fn
		t, _ := measure(bl.name, r.Bytes, cfg, func() error {
			for _, in := range inputs {
				fn(in)
			}
			return nil
		})
		cfg.Log.Debug("measured", zap.String("row", t.Name), zap.Duration("mean", t.Mean))
		r.Rows = append(r.Rows, t)
	}
	return r, nil
}

func measure(name string, size int, cfg Config, run func() error) (Timing, error) {
	for i := cfg.Warmup; i > 0; i-- {
		if err := run(); err != nil {
			return Timing{}, err
		}
	}

	stop := pollClock()
	var whole time.Duration
	for i := cfg.Iterations; i > 0; i-- {
		start := time.Now()
		if err := run(); err != nil {
			stop()
			return Timing{}, err
		}
		whole += time.Since(start)
	}
	hz := stop()

	t := Timing{Name: name, Mean: whole / time.Duration(cfg.Iterations)}
	if secs := t.Mean.Seconds(); secs > 0 {
		bps := float64(size) / secs
		t.Throughput = bps / 1e6
		if hz > 0 && bps > 0 {
			t.CPB = hz / bps
		}
	}
	return t, nil
}

// pollClock samples the cycle counter in the background until the returned function is called,
// which then reports the mean observed clock rate in Hz (0 without a cycle counter).
func pollClock() func() float64 {
	if calltime == 0 {
		return func() float64 { return 0 }
	}
	var (
		totalHz, polls uint64
		mut            sync.Mutex
		done           = make(chan struct{})
		exited         = make(chan struct{})
	)
	go func() {
		defer close(exited)
		for {
			tsc1 := tscStart()
			time.Sleep(time.Millisecond)
			tsc2 := tscEnd()

			mut.Lock()
			totalHz += tsc2 - tsc1 - calltime
			polls++
			mut.Unlock()

			select {
			case <-done:
				return
			case <-time.After(time.Millisecond * 9):
			}
		}
	}()
	return func() float64 {
		close(done)
		<-exited
		mut.Lock()
		defer mut.Unlock()
		if polls == 0 {
			return 0
		}
		return float64(totalHz*1000) / float64(polls)
	}
}

// Host describes the machine the report was produced on.
func Host() string {
	var ext []string
	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"avx2", cpu.X86.HasAVX2},
		{"avx512f", cpu.X86.HasAVX512F},
		{"sha512", cpu.ARM64.HasSHA512},
		{"asimd", cpu.ARM64.HasASIMD},
	} {
		if f.ok {
			ext = append(ext, f.name)
		}
	}
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown CPU"
	}
	s := Sprintf("%s, %d CPUs, %s/%s", brand, runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	if len(ext) > 0 {
		s += " [" + strings.Join(ext, " ") + "]"
	}
	return s
}

// Print writes r as a fixed-width table.
func (r Report) Print(w io.Writer) {
	Fprintf(w, "%s\n%d inputs, %s of blocks, mean of %d runs\n\n",
		Host(), r.Entries, fmtBytes(r.Bytes), r.Iterations)
	Fprintf(w, "%-30s %12s %10s %10s\n", "", "mean", "MB/s", "cpb")
	for _, t := range r.Rows {
		cpb := "-"
		if t.CPB > 0 {
			cpb = fmtFloats(t.CPB)
		}
		Fprintf(w, "%-30s %12s %10s %10s\n", t.Name, t.Mean.String(), fmtFloats(t.Throughput), cpb)
	}
	if len(r.Rows) > 1 && r.Rows[1].Mean > 0 {
		Fprintf(w, "\nparallel speedup: %sx\n",
			strings.TrimSpace(fmtFloats(float64(r.Rows[0].Mean)/float64(r.Rows[1].Mean))))
	}
}

func fmtBytes(n int) string {
	switch {
	case n >= 1<<30:
		return Sprintf("%.2f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return Sprintf("%.2f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return Sprintf("%.2f KiB", float64(n)/(1<<10))
	}
	return Sprintf("%d B", n)
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += Sprintf(style, v)
	}
	return str
}
