package storage

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/vlolteanu/netwalker/puzzle"
)

/*

sessions

A session tracks which catalog puzzle a web client is looking
at.  Sessions live in the cache as hashes keyed by session ID;
losing the cache just means clients fall back to the default
puzzle.

*/

// DefaultPuzzleId is the catalog puzzle shown to new sessions.
const DefaultPuzzleId = "deadend-pair"

// A Session is the per-client state of the web server.
type Session struct {
	SID     string // session ID
	PID     string // ID of the puzzle being viewed
	Created string // RFC3339 time when the session was created
	Saved   string // RFC3339 time when the session was last saved
}

// LoadSession finds the session with the given ID, or creates
// one viewing the default puzzle.
func LoadSession(sid string) *Session {
	session := &Session{SID: sid, Created: time.Now().Format(time.RFC3339)}
	if session.cacheLookup() {
		return session
	}
	session.Select(DefaultPuzzleId)
	return session
}

// Select switches the session to the given catalog puzzle and
// saves it.  Unknown IDs fall back to the default puzzle.
func (session *Session) Select(pid string) {
	if pid == "" || !knownPuzzle(pid) {
		pid = DefaultPuzzleId
	}
	session.PID = pid
	session.cacheSave()
}

// Entry returns the catalog entry for the session's puzzle.
func (session *Session) Entry() *PuzzleEntry {
	return LoadPuzzleEntry(session.PID)
}

// Board builds a fresh board for the session's puzzle.  Panics
// if the stored puzzle won't build.
func (session *Session) Board() *puzzle.Board {
	b, err := puzzle.New(session.Entry().Summary())
	if err != nil {
		panic(fmt.Errorf("Failed to create puzzle %q: %v", session.PID, err))
	}
	return b
}

// Solution returns the memoized solve outcome for the session's
// puzzle.
func (session *Session) Solution(maxDepth int) *SolutionEntry {
	return SolutionFor(session.PID, maxDepth)
}

// knownPuzzle reports whether a catalog entry exists for the id.
func knownPuzzle(pid string) (found bool) {
	for _, pe := range ListPuzzles() {
		if pe.PuzzleId == pid {
			found = true
		}
	}
	return
}

// key - returns the cache key for the session hash.
func (session *Session) key() string {
	return "SID:" + session.SID
}

// cacheLookup: load a session hash for an ID.  Returns whether
// one was found.
func (session *Session) cacheLookup() (found bool) {
	body := func(conn redis.Conn) error {
		vals, err := redis.Values(conn.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				return fmt.Errorf("Cache failure parsing session %q: %v", session.SID, err)
			}
			found = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("Cache failure loading session %q: %v", session.SID, err)
		}
		return nil
	}
	rdExecute(body)
	return
}

// cacheSave: write the session hash.
func (session *Session) cacheSave() {
	session.Saved = time.Now().Format(time.RFC3339)
	body := func(conn redis.Conn) (err error) {
		_, err = conn.Do("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		if err != nil {
			err = fmt.Errorf("Cache failure saving session %q: %v", session.SID, err)
		}
		return
	}
	rdExecute(body)
}
