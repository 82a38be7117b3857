package cli

import (
	"github.com/conformd/posixprobe/pkg/probe"
	"github.com/conformd/posixprobe/pkg/probes/fsmeta"
	"github.com/conformd/posixprobe/pkg/probes/localstate"
	"github.com/conformd/posixprobe/pkg/probes/pingpong"
	"github.com/conformd/posixprobe/pkg/probes/scantext"
	"github.com/conformd/posixprobe/pkg/probes/timestamp"
)

// defaultRegistry assembles every built-in probe in its canonical order.
func defaultRegistry() *probe.Registry {
	reg := probe.NewRegistry()
	for _, p := range []probe.Probe{
		scantext.New(),
		fsmeta.New(),
		timestamp.New(),
		localstate.New(),
		pingpong.New(),
	} {
		// Registration of the built-in set cannot collide.
		_ = reg.Register(p)
	}
	return reg
}
