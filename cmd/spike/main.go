// Command spike stresses concurrent note additions against a versioned
// workspace: many goroutines writing through one store, every write
// committed to git. It validates that the store lock and the git lock
// serialize cleanly under load.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/aretw0/pocket"
)

const WorkerCount = 100

func main() {
	log.Println("Starting spike: concurrent versioned writes")

	tmpDir, err := os.MkdirTemp("", "pocket-spike-*")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	// Kept for inspection on failure; remove manually or rerun.
	log.Printf("Workspace: %s", tmpDir)

	// Dummy identity so commits work on a clean machine
	os.Setenv("GIT_AUTHOR_NAME", "Pocket Spike")
	os.Setenv("GIT_AUTHOR_EMAIL", "spike@pocket.dev")
	os.Setenv("GIT_COMMITTER_NAME", "Pocket Spike")
	os.Setenv("GIT_COMMITTER_EMAIL", "spike@pocket.dev")

	ws, err := pocket.Open(tmpDir,
		pocket.WithAutoInit(true),
		pocket.WithVersioning(true),
	)
	if err != nil {
		log.Fatalf("Failed to open workspace: %v", err)
	}
	defer ws.Close()

	ctx := context.Background()
	group, err := ws.CreateGroup(ctx, "Spike", "")
	if err != nil {
		log.Fatalf("Failed to create group: %v", err)
	}

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(WorkerCount)
	for i := 0; i < WorkerCount; i++ {
		go func(id int) {
			defer wg.Done()
			content := fmt.Sprintf("spike note %d at %s", id, time.Now().Format(time.RFC3339Nano))
			if _, err := ws.AddNoteTo(ctx, group.ID, content); err != nil {
				log.Printf("[Error] AddNote %d: %v", id, err)
			}
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)

	log.Println("All goroutines finished.")
	log.Printf("Total time: %v", duration)
	log.Printf("Throughput: %.2f notes/sec", float64(WorkerCount)/duration.Seconds())

	// Validation 1: every note made it into the slot
	notes := ws.ListNotes(group.ID)
	if len(notes) != WorkerCount {
		log.Fatalf("FAILURE: expected %d notes, found %d", WorkerCount, len(notes))
	}
	log.Printf("All %d notes persisted.", len(notes))

	// Validation 2: git left nothing half-staged
	status := gitOutput(tmpDir, "status", "--porcelain")
	if status != "" {
		log.Fatalf("FAILURE: git status not clean:\n%s", status)
	}
	log.Println("SUCCESS: git status clean.")

	count := gitOutput(tmpDir, "rev-list", "--count", "HEAD")
	log.Printf("Commits in history: %s", count)

	os.RemoveAll(tmpDir)
}

func gitOutput(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("Failed to read git output: %v", err)
		return ""
	}
	return string(out)
}
