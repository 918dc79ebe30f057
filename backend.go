package crack512

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the two execution strategies that apply Compress across a batch. Both call the
// very same Compress, so they cannot disagree on any digest.

// Backend hashes a whole batch of blocks. Position i of the result is the digest of blocks[i]. A
// call either completes the entire batch or fails before any work is started.
type Backend interface {
	Name() string
	Sum(blocks []Block) ([]Digest, error)
}

// ErrAllocation is returned when a batch's buffers would not fit the backend's memory budget.
var ErrAllocation = errors.New("not enough memory to process given list")

/* Bytes held per batch entry: its block and its digest. */
const bytesPerEntry = BlockSize + Size

// Dispatch hashes blocks on the chosen backend.
func Dispatch(blocks []Block, b Backend) ([]Digest, error) {
	if b == nil {
		b = Sequential{}
	}
	return b.Sum(blocks)
}

// ParseBackend maps a configuration name onto a backend. workers is ignored by the sequential
// backend; values below 1 select one worker per logical CPU.
func ParseBackend(name string, workers int) (Backend, error) {
	switch strings.ToLower(name) {
	case "seq", "sequential", "cpu":
		return Sequential{}, nil
	case "par", "parallel", "gpu":
		return &Parallel{Workers: workers}, nil
	default:
		return nil, errors.Errorf("unknown backend %q", name)
	}
}

// Sequential hashes one block at a time on the calling goroutine.
type Sequential struct {
	Limit uint64 /* Byte budget; 0 means unlimited. */
}

func (Sequential) Name() string { return "sequential" }

func (s Sequential) Sum(blocks []Block) ([]Digest, error) {
	if err := reserve(len(blocks), 1, s.Limit); err != nil {
		return nil, err
	}
	sums := make([]Digest, len(blocks))
	for i := range blocks {
		sums[i] = Compress(&blocks[i])
	}
	return sums, nil
}

// Parallel fans a batch out across many goroutines. Blocks are first staged into a separate arena,
// the arena is hashed with no ordering between entries, and the digests are copied back out; those
// three steps always happen in that order.
type Parallel struct {
	Workers int         /* Values below 1 select runtime.NumCPU(). */
	Limit   uint64      /* Byte budget; 0 means the host's currently free memory. */
	Log     *zap.Logger /* Receives stage timings at debug level; may be nil. */
}

type span struct{ lo, hi int }

func (p *Parallel) Name() string { return "parallel" }

func (p *Parallel) Sum(blocks []Block) ([]Digest, error) {
	n, limit := len(blocks), p.Limit
	if limit == 0 {
		limit = freeMemory()
	}
	/* The arena doubles the footprint of the batch. */
	if err := reserve(n, 2, limit); err != nil {
		return nil, err
	}
	out := make([]Digest, n)
	if n == 0 {
		return out, nil
	}
	threads := p.Workers
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	threads = min(threads, n)

	// STAGE IN
	start := time.Now()
	staged, sums := make([]Block, n), make([]Digest, n)
	copy(staged, blocks)
	in := time.Since(start)

	// LAUNCH AND WAIT
	start = time.Now()
	var summing sync.WaitGroup
	to := make(chan span, threads)
	summing.Add(threads)
	for i := threads; i > 0; i-- {
		go func() {
			for s := range to {
				for j := s.lo; j < s.hi; j++ {
					sums[j] = Compress(&staged[j])
				}
			}
			summing.Done()
		}()
	}
	/* A few spans per worker keeps stragglers short without flooding the channel. */
	step := (n + threads*4 - 1) / (threads * 4)
	for lo := 0; lo < n; lo += step {
		to <- span{lo, min(lo+step, n)}
	}
	close(to)
	summing.Wait()
	run := time.Since(start)

	// STAGE OUT
	start = time.Now()
	copy(out, sums)
	outT := time.Since(start)

	if p.Log != nil {
		p.Log.Debug("parallel dispatch",
			zap.Int("blocks", n),
			zap.Int("workers", threads),
			zap.Duration("stage_in", in),
			zap.Duration("compute", run),
			zap.Duration("stage_out", outT))
	}
	return out, nil
}

func reserve(n, copies int, limit uint64) error {
	if limit == 0 || n == 0 {
		return nil
	}
	per := uint64(bytesPerEntry * copies)
	if uint64(n) > limit/per {
		return errors.Wrapf(ErrAllocation, "%d entries need %d bytes, budget is %d",
			n, uint64(n)*per, limit)
	}
	return nil
}
