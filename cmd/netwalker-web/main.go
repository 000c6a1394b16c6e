// Web server for solving Netwalk puzzles: HTML pages for
// browsing the catalog plus a JSON API over the solver.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vlolteanu/netwalker/client"
	"github.com/vlolteanu/netwalker/puzzle"
	"github.com/vlolteanu/netwalker/storage"
)

const cookieName = "netwalkerID"
const cookiePath = "/"

var startTime = time.Now() // instance start-up time

func main() {
	// local overrides for the service URLs, if present
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	if err := client.VerifyResources(); err != nil {
		log.Printf("Couldn't find client resources: %v", err)
		shutdown(startupFailureShutdown)
	}
	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		log.Printf("Couldn't connect storage: %v", err)
		shutdown(startupFailureShutdown)
	}
	log.Printf("Connected to cache at %q, database at %q", cacheId, databaseId)
	defer storage.Close()

	// catch signals
	shutdownOnSignal()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Handling %s %s...", r.Method, r.URL.Path)
		session := sessionSelect(w, r)
		switch {
		case strings.HasPrefix(r.URL.Path, "/reset/"):
			session.Select(r.URL.Query().Get("puzzle"))
			http.Redirect(w, r, "/solver/", http.StatusFound)
		case strings.HasPrefix(r.URL.Path, "/solver/"):
			solverHandler(session, w, r)
		case strings.HasPrefix(r.URL.Path, "/solve/"):
			solveHandler(session, w, r)
		case strings.HasPrefix(r.URL.Path, "/api/"):
			apiHandler(session, w, r)
		default:
			http.Redirect(w, r, "/solver/", http.StatusFound)
		}
	})

	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Printf("Listening on %s...", port)
	if err := http.ListenAndServe(port, nil); err != nil {
		log.Printf("Listener failure: %v", err)
		shutdown(listenerFailureShutdown)
	}
}

/*

page handlers

*/

// catalogChoices assembles the id-to-name map for the puzzle
// selector.
func catalogChoices() map[string]string {
	choices := make(map[string]string)
	for _, pe := range storage.ListPuzzles() {
		choices[pe.PuzzleId] = pe.Name
	}
	return choices
}

// solverHandler shows the session's puzzle as constructed.
func solverHandler(session *storage.Session, w http.ResponseWriter, r *http.Request) {
	entry := session.Entry()
	body := client.SolverPage(session.SID, session.PID, entry.Name,
		session.Board().State(), catalogChoices())
	writePage(w, body)
}

// solveHandler shows the memoized solve outcome for the
// session's puzzle.
func solveHandler(session *storage.Session, w http.ResponseWriter, r *http.Request) {
	entry := session.Entry()
	soln := session.Solution(puzzle.DefaultMaxDepth)
	state := &puzzle.State{
		Width:   int(entry.Width),
		Height:  int(entry.Height),
		Pipes:   entry.Pipes,
		Solved:  soln.Outcome == storage.OutcomeSolved,
		Diagram: soln.Diagram,
	}
	body := client.SolverPage(session.SID, session.PID, entry.Name, state, catalogChoices())
	writePage(w, body)
}

func writePage(w http.ResponseWriter, body string) {
	hs := w.Header()
	hs.Add("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

/*

JSON API

*/

// apiHandler serves the JSON surface: the catalog listing, the
// session puzzle's state, and on-demand solving of posted
// summaries.
func apiHandler(session *storage.Session, w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/api/puzzles"):
		hs := w.Header()
		hs.Add("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(storage.ListPuzzles()); err != nil {
			log.Printf("Couldn't encode puzzle list: %v", err)
		}
	case strings.HasPrefix(r.URL.Path, "/api/state"):
		if err := session.Board().StateHandler(w, r); err != nil {
			log.Printf("State failed: %v", err)
		}
	case strings.HasPrefix(r.URL.Path, "/api/solve") && r.Method == "POST":
		// solve an ad-hoc posted puzzle rather than the session's
		var sum puzzle.Summary
		if err := json.NewDecoder(r.Body).Decode(&sum); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b, err := puzzle.New(&sum)
		if err != nil {
			status := http.StatusBadRequest
			if puzzle.IsUnsolvable(err) {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), status)
			log.Printf("Ad-hoc build failed: %v", err)
			return
		}
		// the body is already drained, so the solve runs with
		// the default depth bound
		if _, err := b.SolveHandler(w, r); err != nil {
			log.Printf("Ad-hoc solve failed: %v", err)
		}
	default:
		http.NotFound(w, r)
	}
}

/*

session handling

*/

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
func getCookie(w http.ResponseWriter, r *http.Request) string {
	if sc, e := r.Cookie(cookieName); e == nil && sc.Value != "" {
		return sc.Value
	}
	// no session cookie: start a new session with a new ID.
	// poor man's UUID: time since startup, base 36.
	sid := strconv.FormatInt(int64(time.Since(startTime)), 36)
	sc := &http.Cookie{Name: cookieName, Value: sid, Path: cookiePath}
	http.SetCookie(w, sc)
	log.Printf("No session cookie found, created new session ID %q", sid)
	return sid
}

// sessionSelect: find or create the session for the current
// connection.
func sessionSelect(w http.ResponseWriter, r *http.Request) *storage.Session {
	return storage.LoadSession(getCookie(w, r))
}

/*

coordinate shutdown

*/

type shutdownCause int

const (
	unknownShutdown = iota
	startupFailureShutdown
	caughtSignalShutdown
	listenerFailureShutdown
)

// shutdown: process exit with logging.
func shutdown(reason shutdownCause) {
	storage.Close()
	switch reason {
	case startupFailureShutdown:
		log.Fatal("Exiting: initialization failure.")
	case caughtSignalShutdown:
		log.Fatal("Exiting: caught signal.")
	case listenerFailureShutdown:
		log.Fatal("Exiting: web server failed.")
	default:
		log.Fatal("Exiting: unknown cause.")
	}
}

// shutdownOnSignal: catch signals and exit.
func shutdownOnSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	go func() {
		s := <-c
		log.Printf("Received OS-level signal: %v", s)
		shutdown(caughtSignalShutdown)
	}()
}
