// Package client renders the web pages of the netwalker server.
package client

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/vlolteanu/netwalker/puzzle"
)

/*

Common client settings

*/

const (
	applicationName         = "netwalker"
	templatePageSuffix      = "Page.tmpl.html"
	templateDirectoryEnvVar = "TEMPLATE_DIRECTORY"
)

var defaultTemplateDirectory = filepath.Join("client", "tmpl")

// findTemplateDirectory prefers the environment setting, then
// the repository layout, then the package-local directory.
func findTemplateDirectory() string {
	if dir := os.Getenv(templateDirectoryEnvVar); dir != "" {
		return dir
	}
	if fi, err := os.Stat(defaultTemplateDirectory); err == nil && fi.IsDir() {
		return defaultTemplateDirectory
	}
	return "tmpl"
}

// VerifyResources - check that the template directory can be
// found, return an error if not.
func VerifyResources() error {
	dir := findTemplateDirectory()
	if fi, err := os.Stat(dir); err != nil {
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("Template resource location %q not a directory.", dir)
	}
	return nil
}

// template cache, filled on first use
var pageTemplates = make(map[string]*template.Template)

// loadPageTemplate parses and caches the named page template.
func loadPageTemplate(name string) (*template.Template, error) {
	if tmpl, ok := pageTemplates[name]; ok {
		return tmpl, nil
	}
	path := filepath.Join(findTemplateDirectory(), name+templatePageSuffix)
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, err
	}
	pageTemplates[name] = tmpl
	return tmpl, nil
}

/*

solver pages

*/

// A templatePuzzleChoice is one catalog entry offered in the
// puzzle selector.
type templatePuzzleChoice struct {
	PuzzleId string
	Name     string
	Selected bool
}

// A templateSolverPage contains the values to fill the solver
// page template.
type templateSolverPage struct {
	Title      string
	SessionID  string
	PuzzleID   string
	PuzzleName string
	Diagram    string
	Solved     bool
	Unsolved   int
	Choices    []templatePuzzleChoice
}

// SolverPage executes the solver page template over the passed
// session and board state, and returns the page content as a
// string.
func SolverPage(sessionID, puzzleID, puzzleName string, state *puzzle.State, choices map[string]string) string {
	tsp := templateSolverPage{
		Title:      fmt.Sprintf("%s: %s", applicationName, puzzleName),
		SessionID:  sessionID,
		PuzzleID:   puzzleID,
		PuzzleName: puzzleName,
		Diagram:    state.Diagram,
		Solved:     state.Solved,
		Unsolved:   state.Unsolved,
	}
	for id, name := range choices {
		tsp.Choices = append(tsp.Choices, templatePuzzleChoice{
			PuzzleId: id,
			Name:     name,
			Selected: id == puzzleID,
		})
	}

	tmpl, err := loadPageTemplate("solver")
	if err != nil {
		return errorPage(fmt.Errorf("Couldn't load the %q template: %v", "solver", err))
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, tsp); err != nil {
		return errorPage(err)
	}
	return buf.String()
}

/*

error pages

*/

// errorPage is the fallback when templates are missing or
// broken: a minimal page that needs no resources.
func errorPage(e error) string {
	return fmt.Sprintf(
		"<html><head><title>%s: Error</title></head>"+
			"<body><h1>Something went wrong</h1><p>%v</p></body></html>",
		applicationName, template.HTMLEscapeString(e.Error()))
}
