package dbprep

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

/*

sample data

*/

type dataFunction func(context.Context, pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the sample data into the database.  You should do
// this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the sample data from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/netwalker?sslmode=disable"
	}

	// open the database, defer the close
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback(ctx)
				panic(e)
			}
		}()
		if err := fn(ctx, tx); err != nil {
			tx.Rollback(ctx)
			return err
		}
		return tx.Commit(ctx)
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return err
		}
	}
	return nil
}

/*

sample puzzles

*/

type samplePuzzle struct {
	id     string
	name   string
	width  int32
	height int32
	pipes  string
}

// The starter catalog.  Everything here decodes cleanly; the
// line lattice is deliberately unsolvable so the web UI has an
// example of a network that cannot connect.
var samplePuzzles = []samplePuzzle{
	{"deadend-pair", "Deadend Pair", 2, 1, "11"},
	{"pinned-pair", "Pinned Pair", 3, 1, "110"},
	{"line-ring", "Line Ring", 5, 1, "55555"},
	{"elbow-loop", "Elbow Loop", 2, 2, "9999"},
	{"crossbar", "Crossbar", 3, 3, "4047ad101"},
	{"line-lattice", "Line Lattice", 3, 3, "555555555"},
}

func insertSamples(ctx context.Context, tx pgx.Tx) error {
	for _, sp := range samplePuzzles {
		_, err := tx.Exec(ctx,
			"INSERT INTO puzzles (puzzleId, name, width, height, pipes, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6)",
			sp.id, sp.name, sp.width, sp.height, sp.pipes, time.Now())
		if err != nil {
			return fmt.Errorf("Couldn't insert sample puzzle %q: %v", sp.id, err)
		}
	}
	return nil
}

func deleteSamples(ctx context.Context, tx pgx.Tx) error {
	for _, sp := range samplePuzzles {
		_, err := tx.Exec(ctx, "DELETE FROM puzzles WHERE puzzleId = $1", sp.id)
		if err != nil {
			return fmt.Errorf("Couldn't delete sample puzzle %q: %v", sp.id, err)
		}
	}
	return nil
}
