// Storage preparation utility: brings the database schema and
// sample data up before the web server starts.
package main

import (
	"log"
	"os"

	"github.com/vlolteanu/netwalker/dbprep"
)

func main() {
	if len(os.Args) > 2 || (len(os.Args) == 2 && os.Args[1] != "-force") {
		log.Fatalf("usage: %s [-force]", os.Args[0])
	}
	if len(os.Args) == 2 {
		// rebuild everything from scratch
		log.Printf("Reinitializing cache and database...")
		if err := dbprep.ReinitializeAll(); err != nil {
			log.Fatalf("Failed to reinitialize storage: %v", err)
		}
		log.Printf("Storage reinitialized.")
		return
	}
	log.Printf("Ensuring database schema and data...")
	if err := dbprep.EnsureData(); err != nil {
		log.Fatalf("Failed to prepare storage: %v", err)
	}
	log.Printf("Storage ready.")
}
