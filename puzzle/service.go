package puzzle

import (
	"encoding/json"
	"net/http"
)

/*

RESTful wrappers

These handlers expose boards over HTTP with JSON bodies, so a
web front end can create puzzles, inspect their state, and ask
for solutions.  Every handler reports the outcome to the web
client and returns the same outcome to the Go caller, so servers
can track session state without re-parsing their own responses.

*/

// NewHandler is a POST handler that reads a JSON-encoded Summary
// from the request body and builds a board from it.  The new
// board's State is sent as a 200 response and the board is
// returned to the Go caller.  Undecodable bodies and bad
// summaries get a 400 response; summaries whose boards are
// contradictory at construction get a 422.
func NewHandler(w http.ResponseWriter, r *http.Request) (*Board, error) {
	dec := json.NewDecoder(r.Body)
	var summary Summary
	if e := dec.Decode(&summary); e != nil {
		err := Error{
			Scope:     ArgumentScope,
			Condition: GeneralCondition,
			Values:    ErrorData{e.Error()},
		}
		return nil, writeFailure(err, w)
	}
	b, e := New(&summary)
	if e != nil {
		return nil, writeFailure(e, w)
	}
	return b, b.StateHandler(w, r)
}

// SummaryHandler responds with the board's summary.
func (b *Board) SummaryHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(b.Summary(), http.StatusOK, w)
}

// StateHandler responds with the board's current solving state.
func (b *Board) StateHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(b.State(), http.StatusOK, w)
}

// A SolveRequest bounds a solve run.  A zero MaxDepth gets the
// default bound.
type SolveRequest struct {
	MaxDepth int `json:"maxDepth,omitempty"`
}

// SolveHandler is a POST handler that runs the solver on a copy
// of the board and responds with the copy's state.  The solved
// copy is also returned to the Go caller, which keeps the
// receiving board intact for incremental use.  Unsolvable and
// exhausted outcomes get a 422 response.
func (b *Board) SolveHandler(w http.ResponseWriter, r *http.Request) (*Board, error) {
	var req SolveRequest
	if r.Body != nil {
		// an empty body just means default bounds
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.MaxDepth < 1 {
		req.MaxDepth = DefaultMaxDepth
	}
	solved := b.copy()
	if e := solved.Solve(req.MaxDepth); e != nil {
		return nil, writeFailure(e, w)
	}
	return solved, writeJSON(solved.State(), http.StatusOK, w)
}

/*

response helpers

*/

// writeFailure sends a solver or argument error to the web
// client with an appropriate status, and hands the same error
// back for the Go caller.
func writeFailure(e error, w http.ResponseWriter) error {
	status := http.StatusBadRequest
	if IsUnsolvable(e) || IsExhausted(e) {
		status = http.StatusUnprocessableEntity
	}
	err, ok := e.(Error)
	if !ok {
		err = Error{
			Scope:     BoardScope,
			Condition: GeneralCondition,
			Values:    ErrorData{e.Error()},
		}
	}
	err.Message = err.Error()
	if we := writeJSON(err, status, w); we != nil {
		return we
	}
	return err
}

// writeJSON sends any JSON-serializable value with the given
// status.  Returns nil on success, the encoding error otherwise.
func writeJSON(v interface{}, status int, w http.ResponseWriter) error {
	body, e := json.Marshal(v)
	if e != nil {
		http.Error(w, e.Error(), http.StatusInternalServerError)
		return e
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
	return nil
}
