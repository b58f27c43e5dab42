// Package benchmark provides performance benchmarks for ConnectUS.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Run with specific address book sizes:
//
//	go test -bench=BenchmarkBook -benchmem -benchtime=10s ./internal/tests/benchmark/...
//
// Compare results:
//
//	go test -bench=. -benchmem -count=5 ./internal/tests/benchmark/... | tee new.txt
//	benchstat old.txt new.txt
package benchmark
