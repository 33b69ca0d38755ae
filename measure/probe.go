package measure

import (
	"fmt"

	"github.com/ByLCY/wordsplit/style"
)

// Probe is a transient, off-canvas text object created only to be measured.
type Probe interface {
	Width() (float64, error)
	Remove() error
}

// ProbeHost materializes probes.
type ProbeHost interface {
	NewProbe(text string, st style.Attributes) (Probe, error)
}

// ProbeOracle measures by creating a probe with stroke forced off, reading
// its width and removing it again on every path.
type ProbeOracle struct {
	Host ProbeHost
}

var _ Oracle = ProbeOracle{}

func (o ProbeOracle) Measure(text string, st style.Attributes) (w float64, err error) {
	if o.Host == nil {
		return 0, fmt.Errorf("measure: no probe host")
	}
	probeStyle := style.Clone(st)
	style.ForceNoStroke(&probeStyle)

	probe, err := o.Host.NewProbe(text, probeStyle)
	if err != nil {
		return 0, fmt.Errorf("measure: create probe for %q: %w", text, err)
	}
	defer func() {
		if rerr := probe.Remove(); rerr != nil {
			tracer().Infof("removing probe for %q failed: %v", text, rerr)
		}
	}()
	return probe.Width()
}
