//go:build amd64

package statz

import "github.com/dterei/gotsc"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var calltime = gotsc.TSCOverhead()

func tscStart() uint64 { return gotsc.BenchStart() }

func tscEnd() uint64 { return gotsc.BenchEnd() }
