//go:build linux

package affinity

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/containerd/cgroups"
	"github.com/gofrs/flock"
	specs "github.com/opencontainers/runtime-spec/specs-go"
	"golang.org/x/sys/unix"

	"github.com/fenwicksys/utrt/pkg/obslog"
)

// cgroupPath is the static cgroup this package confines the process
// under. A single well-known path is enough: this runtime only ever
// runs as one process per host at a time in its demo/test use.
const cgroupPath = "/utrt-single-cpu"

// lockPath guards concurrent creation of cgroupPath: two processes
// racing cgroups.New on the same static path can otherwise observe a
// transient "already exists" or "no such file" error depending on
// kernel cgroupfs timing.
const lockPath = "/run/utrt-affinity.lock"

type cgroupPinner struct {
	cg cgroups.Cgroup
}

func (p *cgroupPinner) Unpin() error {
	return p.cg.Delete()
}

// Pin confines the calling process to cpu via a static cpuset cgroup
// (falling back to sched_setaffinity if cgroup creation fails — e.g.
// rootless, cgroupfs v2-only, or no cgroup controller mounted).
func Pin(cpu int) (Pinner, error) {
	lockCtx, lockCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer lockCancel()

	fl := flock.New(lockPath)
	locked, err := fl.TryLockContext(lockCtx, 50*time.Millisecond)
	if err == nil && locked {
		defer fl.Unlock()
	} else {
		obslog.Warningf("affinity: could not acquire %s, proceeding without it: %v", lockPath, err)
	}

	res := &specs.LinuxResources{
		CPU: &specs.LinuxCPU{Cpus: fmt.Sprintf("%d", cpu)},
	}

	var cg cgroups.Cgroup
	operation := func() error {
		var err error
		cg, err = cgroups.New(cgroups.V1, cgroups.StaticPath(cgroupPath), res)
		return err
	}
	boff := backoff.NewExponentialBackOff()
	boff.MaxElapsedTime = 500 * time.Millisecond
	if err := backoff.Retry(operation, boff); err != nil {
		obslog.Warningf("affinity: cgroup confinement unavailable (%v), falling back to sched_setaffinity", err)
		return pinViaSchedAffinity(cpu)
	}

	if err := cg.Add(cgroups.Process{Pid: os.Getpid()}); err != nil {
		_ = cg.Delete()
		obslog.Warningf("affinity: joining cgroup failed (%v), falling back to sched_setaffinity", err)
		return pinViaSchedAffinity(cpu)
	}

	obslog.Infof("affinity: confined process %d to cpu %d via cgroup %s", os.Getpid(), cpu, cgroupPath)
	return &cgroupPinner{cg: cg}, nil
}

type schedAffinityPinner struct {
	prev unix.CPUSet
}

func (p *schedAffinityPinner) Unpin() error {
	return unix.SchedSetaffinity(0, &p.prev)
}

func pinViaSchedAffinity(cpu int) (Pinner, error) {
	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		return nil, fmt.Errorf("affinity: reading current affinity: %w", err)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("affinity: sched_setaffinity: %w", err)
	}
	obslog.Infof("affinity: confined process %d to cpu %d via sched_setaffinity", os.Getpid(), cpu)
	return &schedAffinityPinner{prev: prev}, nil
}
