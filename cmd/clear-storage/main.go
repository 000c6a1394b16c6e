// Storage teardown utility: drops the database tables and
// flushes the cache.
package main

import (
	"log"

	"github.com/vlolteanu/netwalker/dbprep"
)

func main() {
	log.Printf("Flushing cache...")
	if err := dbprep.ClearCache(); err != nil {
		log.Fatalf("Failed to clear cache: %v", err)
	}
	log.Printf("Removing database tables...")
	if err := dbprep.RemoveData(); err != nil {
		log.Fatalf("Failed to remove data: %v", err)
	}
	log.Printf("Storage cleared.")
}
