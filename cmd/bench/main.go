package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/pocket"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	adapter := flag.String("adapter", "fs", "Adapter to benchmark (fs or sqlite)")
	keep := flag.Bool("keep", false, "Keep the benchmark workspace after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "pocket_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Versioning stays off so the numbers reflect the adapter, not git.
	ws, err := pocket.Open(benchDir,
		pocket.WithLogger(logger),
		pocket.WithAutoInit(true),
		pocket.WithAdapter(*adapter),
		pocket.WithVersioning(false),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.TODO()

	group, err := ws.CreateGroup(ctx, "Benchmark", "")
	if err != nil {
		panic(err)
	}

	// Phase 1: Writes. Every AddNote rewrites the whole notes slot, so
	// cost grows with the collection; the run reports the total.
	fmt.Printf("Writing %d notes via %s adapter in %s...\n", *count, *adapter, benchDir)
	startWrite := time.Now()
	for i := 0; i < *count; i++ {
		if _, err := ws.AddNoteTo(ctx, group.ID, fmt.Sprintf("benchmark note %d", i)); err != nil {
			panic(err)
		}
	}
	writeDuration := time.Since(startWrite)
	fmt.Printf("Writes took: %v (%.2f notes/sec)\n", writeDuration, float64(*count)/writeDuration.Seconds())

	if err := ws.Close(); err != nil {
		panic(err)
	}

	// Phase 2: Cold load. Re-open to simulate a new CLI command run.
	fmt.Println("Running Load (cold)...")
	startLoad := time.Now()
	ws2, err := pocket.Open(benchDir,
		pocket.WithLogger(logger),
		pocket.WithAdapter(*adapter),
		pocket.WithVersioning(false),
	)
	if err != nil {
		panic(err)
	}
	loadDuration := time.Since(startLoad)
	notes := ws2.ListAllNotes()
	fmt.Printf("Load Result: %v (Items: %d)\n", loadDuration, len(notes))

	// Phase 3: In-memory listing, for contrast with the cold load.
	startList := time.Now()
	for i := 0; i < 100; i++ {
		_ = ws2.ListNotes(group.ID)
	}
	listDuration := time.Since(startList) / 100

	if err := ws2.Close(); err != nil {
		panic(err)
	}

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %s adapter):\n", *count, *adapter)
	fmt.Printf("  Write total: %v\n", writeDuration)
	fmt.Printf("  Cold load:   %v\n", loadDuration)
	fmt.Printf("  Warm list:   %v\n", listDuration)
	fmt.Printf("--------------------------------------------------\n")
}
