package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/yndnr/connectus-go/internal/cli/repl"
	"github.com/yndnr/connectus-go/internal/telemetry/metric"
)

// BenchmarkBookAdd benchmarks adding persons to a prefilled address book.
func BenchmarkBookAdd(b *testing.B) {
	runWithPersonCounts(b, SmallPersonCounts, func(b *testing.B, count int) {
		ctx := context.Background()
		book := prefillBook(b, count)

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if err := book.AddPerson(ctx, createPerson(count+i)); err != nil {
				b.Fatalf("AddPerson failed: %v", err)
			}
		}

		b.StopTimer()
		reportMemory(b, "mem")
	})
}

// BenchmarkBookSearch benchmarks search over the whole address book
// through the engine, parse included.
func BenchmarkBookSearch(b *testing.B) {
	queries := []string{
		"search n/person 42",
		"search mod/CS2103T",
		"search n/person mod/MA1521 maj/computer",
	}

	runWithPersonCounts(b, SmallPersonCounts, func(b *testing.B, count int) {
		ctx := context.Background()
		engine := repl.NewEngine(prefillBook(b, count))

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if _, _, err := engine.Eval(ctx, queries[i%len(queries)]); err != nil {
				b.Fatalf("Eval failed: %v", err)
			}
		}
	})
}

// BenchmarkEngineEval_Metrics measures the cost of command metrics.
func BenchmarkEngineEval_Metrics(b *testing.B) {
	for _, withMetrics := range []bool{false, true} {
		b.Run(fmt.Sprintf("metrics_%t", withMetrics), func(b *testing.B) {
			ctx := context.Background()
			var opts []repl.EngineOption
			if withMetrics {
				opts = append(opts, repl.WithMetrics(metric.NewRegistry()))
			}
			engine := repl.NewEngine(prefillBook(b, 1000), opts...)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, _, err := engine.Eval(ctx, "list"); err != nil {
					b.Fatalf("Eval failed: %v", err)
				}
			}
		})
	}
}
