// Command diffscope analyzes a unified diff structurally and reports which
// functions, types and other declarations it touches.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/fs"
	"github.com/fwojciec/diffscope/genai"
	"github.com/fwojciec/diffscope/git"
	"github.com/fwojciec/diffscope/jsonl"
	"github.com/fwojciec/diffscope/treesitter"
)

// ErrNoChanges is returned when the input contains no diff content.
var ErrNoChanges = errors.New("no changes to analyze")

// App wires the analysis pipeline together. All collaborators are injectable
// for testing.
type App struct {
	// Input is read when FilePath is empty. When both are unset the diff is
	// captured from git.
	Input    io.Reader
	FilePath string
	Staged   bool

	Analyzer  diffscope.Analyzer
	Explainer diffscope.Explainer
	Git       *git.Client

	// HistoryPath, when set, appends each analysis to a JSONL file.
	HistoryPath string
}

// Run reads the diff, analyzes it, and optionally generates a commit
// message. The commit message is empty when no Explainer is configured.
func (a *App) Run(ctx context.Context) (*diffscope.DiffAnalysis, string, error) {
	diffText, err := a.readDiff(ctx)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(diffText) == "" {
		return nil, "", ErrNoChanges
	}

	analysis, err := a.Analyzer.Analyze(ctx, diffText)
	if err != nil {
		return nil, "", err
	}

	var message string
	if a.Explainer != nil {
		message, err = a.Explainer.CommitMessage(ctx, analysis)
		if err != nil {
			return nil, "", err
		}
	}

	if a.HistoryPath != "" {
		if err := a.appendHistory(analysis); err != nil {
			return nil, "", err
		}
	}

	return analysis, message, nil
}

func (a *App) readDiff(ctx context.Context) (string, error) {
	if a.FilePath != "" {
		data, err := os.ReadFile(a.FilePath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if a.Input != nil {
		data, err := io.ReadAll(a.Input)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if a.Git == nil {
		return "", errors.New("no diff input configured")
	}
	if a.Staged {
		return a.Git.StagedDiff(ctx)
	}
	return a.Git.Diff(ctx)
}

func (a *App) appendHistory(analysis *diffscope.DiffAnalysis) error {
	if err := os.MkdirAll(filepath.Dir(a.HistoryPath), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	f, err := os.OpenFile(a.HistoryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	return jsonl.NewWriter(f).Write(analysis)
}

func main() {
	var (
		filePath = flag.String("f", "", "read diff from file instead of stdin/git")
		repoDir  = flag.String("repo", "", "repository directory (defaults to current directory)")
		staged   = flag.Bool("staged", false, "analyze the staged diff instead of the working tree")
		asJSON   = flag.Bool("json", false, "print the analysis as JSON")
		commit   = flag.Bool("commit", false, "generate a commit message from the analysis")
		history  = flag.Bool("history", false, "append the analysis to the history file")
		workers  = flag.Int("workers", 4, "max files analyzed in parallel")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	root := *repoDir
	gitClient := git.NewClient(root)
	if root == "" && gitClient.IsRepository(ctx) {
		if top, err := gitClient.Root(ctx); err == nil {
			root = top
			gitClient = git.NewClient(root)
		}
	}

	analyzer, err := treesitter.New(root,
		treesitter.WithLogger(logger),
		treesitter.WithConcurrency(*workers),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "diffscope: %v\n", err)
		os.Exit(1)
	}

	app := &App{
		FilePath: *filePath,
		Staged:   *staged,
		Analyzer: analyzer,
		Git:      gitClient,
	}
	if *filePath == "" && !isTerminal(os.Stdin) {
		app.Input = os.Stdin
	}
	if *history {
		app.HistoryPath = filepath.Join(fs.DefaultCacheDir(), "history.jsonl")
	}
	if *commit {
		explainer, err := genai.NewExplainer(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "diffscope: %v\n", err)
			os.Exit(1)
		}
		app.Explainer = explainer
	}

	analysis, message, err := app.Run(ctx)
	if err != nil {
		if errors.Is(err, ErrNoChanges) {
			fmt.Fprintln(os.Stderr, "diffscope: no changes to analyze")
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "diffscope: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis); err != nil {
			fmt.Fprintf(os.Stderr, "diffscope: %v\n", err)
			os.Exit(1)
		}
	} else {
		printAnalysis(os.Stdout, analysis)
	}
	if message != "" {
		fmt.Fprintf(os.Stdout, "\n%s\n", message)
	}
}

func printAnalysis(w io.Writer, analysis *diffscope.DiffAnalysis) {
	fmt.Fprintln(w, analysis.OverallSummary)
	for _, fa := range analysis.FileAnalyses {
		fmt.Fprintf(w, "\n%s (%s, %s)\n", fa.Path, fa.KindLabel, fa.Language)
		fmt.Fprintf(w, "  %s\n", fa.Summary)
		for _, n := range fa.AffectedNodes {
			visibility := ""
			if n.IsPublic {
				visibility = " public"
			}
			fmt.Fprintf(w, "  - %s %s (lines %d-%d)%s\n", n.Kind, n.Name, n.StartLine, n.EndLine, visibility)
		}
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
