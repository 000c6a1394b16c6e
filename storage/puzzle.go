package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/vlolteanu/netwalker/puzzle"
)

/*

puzzle entries

*/

// A PuzzleEntry is the stored form of a catalog puzzle.  It is
// JSON-serializable so it can go into the cache as well as the
// database.
type PuzzleEntry struct {
	PuzzleId string // unique ID for this puzzle
	Name     string // user-facing name of the puzzle
	Width    int32
	Height   int32
	Pipes    string
}

// LoadPuzzleEntry first checks the cache, then the database, to
// find the puzzle's entry.  If it loads from the database, it
// caches the result.  Panics if there is no such stored entry.
func LoadPuzzleEntry(id string) *PuzzleEntry {
	pe := &PuzzleEntry{PuzzleId: id}
	if pe.cacheLoad() {
		return pe
	}
	// cache miss, load from database and save to cache
	pe.databaseLoad()
	pe.cacheInsert()
	return pe
}

// Summary returns the solver-facing description of the stored
// puzzle.
func (pe *PuzzleEntry) Summary() *puzzle.Summary {
	return &puzzle.Summary{
		Width:  int(pe.Width),
		Height: int(pe.Height),
		Pipes:  pe.Pipes,
	}
}

// key: compute the cache key for a puzzle entry.
func (pe *PuzzleEntry) key() string {
	return "PID:" + pe.PuzzleId
}

// cacheLoad: load an already cached puzzle entry.  Returns
// whether the entry was found in the cache.
func (pe *PuzzleEntry) cacheLoad() bool {
	var bytes []byte
	body := func(conn redis.Conn) (err error) {
		bytes, err = redis.Bytes(conn.Do("GET", pe.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var spe *PuzzleEntry
	if err := json.Unmarshal(bytes, &spe); err != nil {
		panic(fmt.Errorf("Failed to unmarshal puzzle entry %q: %v", pe.PuzzleId, err))
	}
	if spe.PuzzleId != pe.PuzzleId {
		panic(fmt.Errorf("Cached puzzle entry (id: %q) found for puzzle %q!",
			spe.PuzzleId, pe.PuzzleId))
	}
	*pe = *spe
	return true
}

// cacheInsert: insert a puzzle entry into the cache.  Replaces
// any existing entry with the same id.
func (pe *PuzzleEntry) cacheInsert() {
	bytes, e := json.Marshal(pe)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal puzzle entry %q: %v", pe.PuzzleId, e))
	}
	body := func(conn redis.Conn) (err error) {
		_, err = conn.Do("SET", pe.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseLoad: load a puzzle entry from the database.  Panics
// if there is no saved entry with the given id.
func (pe *PuzzleEntry) databaseLoad() {
	body := func(ctx context.Context, tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			"SELECT name, width, height, pipes FROM puzzles "+
				"WHERE puzzleId = $1", pe.PuzzleId)
		if err := row.Scan(&pe.Name, &pe.Width, &pe.Height, &pe.Pipes); err != nil {
			return fmt.Errorf("Failure looking up puzzle %q: %v", pe.PuzzleId, err)
		}
		return nil
	}
	pgExecute(body)
}

// DatabaseInsert: insert a new puzzle entry into the database.
// Panics if there is already a saved entry with the given id.
func (pe *PuzzleEntry) DatabaseInsert() {
	body := func(ctx context.Context, tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx,
			"INSERT INTO puzzles (puzzleId, name, width, height, pipes, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6)",
			pe.PuzzleId, pe.Name, pe.Width, pe.Height, pe.Pipes, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	pgExecute(body)
}

// ListPuzzles returns the catalog entries, sorted by name.
func ListPuzzles() []*PuzzleEntry {
	var entries []*PuzzleEntry
	body := func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			"SELECT puzzleId, name, width, height, pipes FROM puzzles ORDER BY name")
		if err != nil {
			return fmt.Errorf("Failure listing puzzles: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			pe := &PuzzleEntry{}
			if err := rows.Scan(&pe.PuzzleId, &pe.Name, &pe.Width, &pe.Height, &pe.Pipes); err != nil {
				return fmt.Errorf("Failure scanning puzzle row: %v", err)
			}
			entries = append(entries, pe)
		}
		return rows.Err()
	}
	pgExecute(body)
	return entries
}

/*

solutions

Solving is the expensive operation, so outcomes are memoized:
first in the cache, then durably in the database.  The stored
outcome includes the rendered diagram so clients never pay for
the same search twice.

*/

// Solve outcomes as stored.
const (
	OutcomeSolved     = "solved"
	OutcomeUnsolvable = "unsolvable"
	OutcomeExhausted  = "exhausted"
)

// A SolutionEntry records the result of running the solver over
// a catalog puzzle at some depth bound.
type SolutionEntry struct {
	PuzzleId string
	MaxDepth int32
	Outcome  string
	Diagram  string
}

// key: compute the cache key for a solution entry.
func (se *SolutionEntry) key() string {
	return fmt.Sprintf("SOLN:%s:%d", se.PuzzleId, se.MaxDepth)
}

// SolutionFor returns the solve outcome for a catalog puzzle,
// computing and recording it on first request.
func SolutionFor(puzzleId string, maxDepth int) *SolutionEntry {
	se := &SolutionEntry{PuzzleId: puzzleId, MaxDepth: int32(maxDepth)}
	if se.cacheLoad() {
		return se
	}
	if se.databaseLoad() {
		se.cacheInsert()
		return se
	}
	se.compute()
	se.databaseInsert()
	se.cacheInsert()
	return se
}

// compute runs the solver and fills in outcome and diagram.
func (se *SolutionEntry) compute() {
	pe := LoadPuzzleEntry(se.PuzzleId)
	b, err := puzzle.New(pe.Summary())
	if err != nil {
		if !puzzle.IsUnsolvable(err) {
			panic(fmt.Errorf("Stored puzzle %q won't build: %v", se.PuzzleId, err))
		}
		se.Outcome, se.Diagram = OutcomeUnsolvable, ""
		return
	}
	switch err := b.Solve(int(se.MaxDepth)); {
	case err == nil:
		se.Outcome = OutcomeSolved
	case puzzle.IsExhausted(err):
		se.Outcome = OutcomeExhausted
	default:
		se.Outcome = OutcomeUnsolvable
	}
	se.Diagram = b.String()
}

// cacheLoad: load an already cached solution.  Returns whether
// it was found.
func (se *SolutionEntry) cacheLoad() bool {
	var bytes []byte
	body := func(conn redis.Conn) (err error) {
		bytes, err = redis.Bytes(conn.Do("GET", se.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading solution %q: %v", se.key(), err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var sse *SolutionEntry
	if err := json.Unmarshal(bytes, &sse); err != nil {
		panic(fmt.Errorf("Failed to unmarshal solution %q: %v", se.key(), err))
	}
	*se = *sse
	return true
}

// cacheInsert: insert a solution into the cache.
func (se *SolutionEntry) cacheInsert() {
	bytes, e := json.Marshal(se)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal solution %q: %v", se.key(), e))
	}
	body := func(conn redis.Conn) (err error) {
		_, err = conn.Do("SET", se.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving solution %q: %v", se.key(), err)
		}
		return
	}
	rdExecute(body)
}

// databaseLoad: load a recorded solution.  Returns whether one
// was recorded.
func (se *SolutionEntry) databaseLoad() (found bool) {
	body := func(ctx context.Context, tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			"SELECT outcome, diagram FROM solutions "+
				"WHERE puzzleId = $1 AND maxDepth = $2", se.PuzzleId, se.MaxDepth)
		err := row.Scan(&se.Outcome, &se.Diagram)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failure looking up solution %q: %v", se.key(), err)
		}
		found = true
		return nil
	}
	pgExecute(body)
	return
}

// databaseInsert: record a computed solution.
func (se *SolutionEntry) databaseInsert() {
	body := func(ctx context.Context, tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx,
			"INSERT INTO solutions (puzzleId, maxDepth, outcome, diagram, created) "+
				"VALUES ($1, $2, $3, $4, $5)",
			se.PuzzleId, se.MaxDepth, se.Outcome, se.Diagram, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving solution %q: %v", se.key(), err)
		}
		return
	}
	pgExecute(body)
}
