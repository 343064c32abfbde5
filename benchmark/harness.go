package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	ExecutionTimeout = 5 * time.Minute
	StandardRuntime  = time.Minute
	MinimumRuntime   = 10 * time.Second
	MinIterations    = 100

	ten         = 10
	hundred     = ten * ten
	thousand    = ten * hundred
	tenThousand = ten * thousand
)

// TimerManager is a subset of the testing.B interface that lets cases exclude
// their setup work from measurement.
type TimerManager interface {
	ResetTimer()
	StartTimer()
	StopTimer()
}

type BenchCase func(context.Context, TimerManager, int) error
type BenchFunction func(*testing.B)

func WrapCase(bench BenchCase) BenchFunction {
	name := getName(bench)
	return func(b *testing.B) {
		ctx := context.Background()
		b.ResetTimer()
		err := bench(ctx, b, b.N)
		require.NoError(b, err, "case='%s'", name)
	}
}

func getAllCases() []*CaseDefinition {
	return []*CaseDefinition{
		{
			Bench:   CanaryIncCase,
			Count:   hundred,
			Size:    -1,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   GlobalCanaryIncCase,
			Count:   hundred,
			Size:    -1,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   FlatDocumentEncoding,
			Count:   tenThousand,
			Size:    flatDataSize,
			Runtime: StandardRuntime,
		},
		{
			Bench:   FlatDocumentSizing,
			Count:   tenThousand,
			Size:    flatDataSize,
			Runtime: StandardRuntime,
		},
		{
			Bench:   FlatDocumentDecoding,
			Count:   tenThousand,
			Size:    flatDataSize,
			Runtime: StandardRuntime,
		},
		{
			Bench:   DeepDocumentEncoding,
			Count:   tenThousand,
			Size:    deepDataSize,
			Runtime: StandardRuntime,
		},
		{
			Bench:   DeepDocumentDecoding,
			Count:   tenThousand,
			Size:    deepDataSize,
			Runtime: StandardRuntime,
		},
		{
			Bench:   FlatRawValidation,
			Count:   tenThousand,
			Size:    flatDataSize,
			Runtime: StandardRuntime,
		},
		{
			Bench:   FlatRawLookup,
			Count:   tenThousand,
			Size:    flatDataSize,
			Runtime: StandardRuntime,
		},
	}
}

// RunAll executes every registered case outside the testing harness and
// writes the collected results to output as a JSON perf report. The report
// still gets written when cases fail so partial runs stay inspectable.
func RunAll(ctx context.Context, output io.Writer) error {
	var failed []string
	metrics := []interface{}{}

	for _, c := range getAllCases() {
		res := c.Run(ctx)
		if res.HasErrors() {
			for _, msg := range res.errReport() {
				fmt.Println("   ", msg)
			}
			failed = append(failed, res.Name)
			continue
		}

		perf, err := res.PerfFormat()
		if err != nil {
			return errors.Wrapf(err, "formatting results for case='%s'", res.Name)
		}
		metrics = append(metrics, perf...)
	}

	enc := json.NewEncoder(output)
	enc.SetIndent("", "   ")
	if err := enc.Encode(metrics); err != nil {
		return errors.Wrap(err, "writing perf report")
	}

	if len(failed) > 0 {
		return errors.Errorf("benchmark cases failed: %s", strings.Join(failed, ", "))
	}
	return nil
}
