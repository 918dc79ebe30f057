package main

import (
	"github.com/mattn/go-isatty"
	. "github.com/spf13/pflag"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var pBackend, pSeed = "", ""
var pWorkers, pIterations, pWarmup = 0, 0, 0
var pNoCodesDefault = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
var pHelp, pNoCodes, pQuiet, pStrict, pDebug bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	pNoCodes = pNoCodesDefault
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	StringVarP(&pBackend, "backend", "B", "par",
		purp+"hash batches with the seq[uential] or par[allel] backend"+zero)

	BoolVar(&pDebug, "debug", false, "")
	CommandLine.MarkHidden("debug")

	IntVarP(&pIterations, "iterations", "n", 100,
		purp+"timed runs averaged per row in mode p"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	Bool("quiet", false,
		purp+"print ONLY matches, digests, or breaking errors"+zero+
			n+"(enables --no-codes)")

	StringVar(&pSeed, "seed", "",
		purp+"64 hexadecimal digits seeding mode g"+zero+" (default random)")

	BoolVar(&pStrict, "strict", false,
		purp+"cause crackdict to panic on any error"+zero)

	IntVar(&pWarmup, "warmup", 10,
		purp+"untimed runs before timing in mode p"+zero)

	IntVarP(&pWorkers, "workers", "w", 0,
		purp+"goroutines used by the parallel backend"+zero+" (default one per CPU)")

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
}
