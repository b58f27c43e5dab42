package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/core/service"
	"github.com/yndnr/connectus-go/internal/storage"
	"github.com/yndnr/connectus-go/internal/storage/memory"
)

// PersonCounts defines the address book sizes for benchmarking.
var PersonCounts = []int{1000, 5000, 10000, 50000}

// SmallPersonCounts for quick benchmarks.
var SmallPersonCounts = []int{100, 1000, 5000}

var modules = []string{"CS2101", "CS2103T", "CS2040S", "MA1521", "ST2334"}

// createPerson creates a test person; i makes the name unique.
func createPerson(i int) *domain.Person {
	return &domain.Person{
		ID:      "cu-" + strings.ToLower(ulid.Make().String()),
		Name:    domain.Name(fmt.Sprintf("Person %d", i)),
		Phone:   domain.Phone(fmt.Sprintf("9%07d", i)),
		Email:   domain.Email(fmt.Sprintf("person%d@example.com", i)),
		Address: "Blk 30 Geylang Street 29",
		Tags: domain.Tags{
			Modules: domain.NewTagSet(modules[i%len(modules)]),
			Majors:  domain.NewTagSet("Computer Science"),
		},
	}
}

// prefillBook returns an in-memory address book holding count persons.
func prefillBook(b *testing.B, count int) *service.AddressBook {
	b.Helper()
	ctx := context.Background()
	book := service.NewAddressBook(memory.New(), storage.NewEphemeralRepository())
	for i := 0; i < count; i++ {
		if err := book.AddPerson(ctx, createPerson(i)); err != nil {
			b.Fatalf("AddPerson failed: %v", err)
		}
	}
	return book
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithPersonCounts runs a benchmark function with various address book sizes.
func runWithPersonCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("persons_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
