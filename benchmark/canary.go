package benchmark

import "context"

// The canary cases do no codec work. Their throughput is the ceiling the
// harness itself imposes, so regressions in the harness show up here first.

func CanaryIncCase(ctx context.Context, tm TimerManager, iters int) error {
	var canaryCount int
	for i := 0; i < iters; i++ {
		canaryCount++
	}
	return nil
}

// globalCanaryCount keeps the increment loop from being optimized away.
var globalCanaryCount int

func GlobalCanaryIncCase(ctx context.Context, tm TimerManager, iters int) error {
	for i := 0; i < iters; i++ {
		globalCanaryCount++
	}
	return nil
}
