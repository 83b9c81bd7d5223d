//go:build !linux

package affinity

import "github.com/fenwicksys/utrt/pkg/obslog"

// Pin is a no-op outside Linux: cgroups and sched_setaffinity are both
// Linux facilities with no portable equivalent in the pack.
func Pin(cpu int) (Pinner, error) {
	obslog.Warningf("affinity: CPU pinning is not supported on this platform; continuing unpinned")
	return noopPinner{}, nil
}
