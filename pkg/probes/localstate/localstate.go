// Package localstate probes per-worker state isolation, the goroutine
// analogue of a __thread variable: every worker owns a private counter that
// no other worker can observe or disturb, while a shared atomic sees every
// increment exactly once.
package localstate

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/conformd/posixprobe/pkg/check"
	"github.com/conformd/posixprobe/pkg/probe"
)

const (
	workers    = 8
	increments = 1000
)

// New returns the localstate probe.
func New() probe.Probe {
	return probe.Probe{
		Name:    "localstate",
		Summary: "per-worker state isolation",
		Run:     run,
	}
}

func run(st *check.State, env *probe.Env) {
	var (
		finals [workers]int
		addrs  [workers]*int
		total  atomic.Int64
	)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			local := 0
			for j := 0; j < increments; j++ {
				local++
				total.Add(1)
			}
			finals[i] = local
			addrs[i] = &local
			return nil
		})
	}
	st.Assert(g.Wait() == nil, "worker group failed\n")

	for i := 0; i < workers; i++ {
		st.Val(int64(finals[i]), "==", increments)
	}
	st.Val(total.Load(), "==", workers*increments)

	// Each worker's variable is a distinct object.
	seen := make(map[*int]int, workers)
	for i, p := range addrs {
		if !st.Assert(p != nil, "worker %d never published its state\n", i) {
			continue
		}
		if prev, dup := seen[p]; dup {
			st.Assert(false, "workers %d and %d share state storage\n", prev, i)
			continue
		}
		seen[p] = i
		st.Val(int64(*p), "==", increments)
	}
}
