package validate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type CheckResult struct {
	Path   string
	Symbol string
	// Kind is the declaration kind that matched ("class", "interface",
	// "struct") or "method".
	Kind   string
	Exists bool
	Found  bool
	Err    error
}

func (r CheckResult) Passed() bool {
	return r.Exists && r.Found && r.Err == nil
}

type GroupResult struct {
	Group  Group
	Checks []CheckResult
}

func (g GroupResult) Passed() int {
	n := 0
	for _, c := range g.Checks {
		if c.Passed() {
			n++
		}
	}
	return n
}

func (g GroupResult) Total() int {
	return len(g.Checks)
}

type Runner struct {
	Root   string
	Logger *zap.Logger
}

func NewRunner(root string, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Root: root, Logger: logger}
}

type source struct {
	content string
	exists  bool
	err     error
}

// Run evaluates every entry of the checklist. A missing or unreadable file
// fails its checks; it never stops the run.
func (r *Runner) Run(c Checklist) Report {
	sources := make(map[string]source)
	read := func(rel string) source {
		if s, ok := sources[rel]; ok {
			return s
		}
		s := r.read(rel)
		sources[rel] = s
		return s
	}

	report := Report{Title: c.Title}
	for _, g := range c.Groups {
		gr := GroupResult{Group: g}
		for _, e := range g.Entries {
			switch g.Kind {
			case KindDeclarations:
				gr.Checks = append(gr.Checks, checkDeclaration(e.Path, e.Symbol, read(e.Path)))
			case KindMethods:
				gr.Checks = append(gr.Checks, checkMethod(g.File, e.Symbol, read(g.File)))
			}
		}
		report.Groups = append(report.Groups, gr)
	}
	return report
}

func (r *Runner) read(rel string) source {
	path := filepath.Join(r.Root, filepath.FromSlash(rel))
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.Logger.Debug("source file missing", zap.String("path", path))
		return source{}
	}
	if err != nil {
		r.Logger.Warn("source file unreadable", zap.String("path", path), zap.Error(err))
		return source{exists: true, err: err}
	}
	return source{content: string(data), exists: true}
}

func checkDeclaration(path, symbol string, src source) CheckResult {
	res := CheckResult{Path: path, Symbol: symbol, Exists: src.exists, Err: src.err}
	if !src.exists || src.err != nil {
		return res
	}
	res.Kind, res.Found = DeclarationKind(src.content, symbol)
	return res
}

func checkMethod(path, symbol string, src source) CheckResult {
	res := CheckResult{Path: path, Symbol: symbol, Kind: "method", Exists: src.exists, Err: src.err}
	if !src.exists || src.err != nil {
		return res
	}
	res.Found = HasMethod(src.content, symbol)
	return res
}
