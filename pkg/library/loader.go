package library

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"verity-hq/scrivener/pkg/wizard/ast"
	"verity-hq/scrivener/pkg/wizard/parser"
)

// Library is a merged, indexed clause library.
type Library struct {
	Policy    *ast.Policy
	Questions []*ast.Question
	Rules     []*ast.Rule
	Clauses   []*ast.Clause
	Profiles  []*ast.FirmProfile

	questionsByCode map[string]*ast.Question
	clausesByCode   map[string]*ast.Clause
	profilesByID    map[string]*ast.FirmProfile
}

// QuestionByCode looks up a question; nil when absent.
func (l *Library) QuestionByCode(code string) *ast.Question {
	return l.questionsByCode[code]
}

// ClauseByCode looks up a clause; nil when absent.
func (l *Library) ClauseByCode(code string) *ast.Clause {
	return l.clausesByCode[code]
}

// ProfileByID looks up a firm profile; nil when absent.
func (l *Library) ProfileByID(id string) *ast.FirmProfile {
	return l.profilesByID[id]
}

// LoadDir loads every YAML file under dir (recursively) and merges the
// results into one Library. Files are visited in path order so loads
// are deterministic. Duplicate question or clause codes across files
// are an error; so is more than one policy record.
func LoadDir(dir string, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan library directory: %w", err)
	}
	sort.Strings(paths)

	lib := &Library{
		questionsByCode: make(map[string]*ast.Question),
		clausesByCode:   make(map[string]*ast.Clause),
		profilesByID:    make(map[string]*ast.FirmProfile),
	}

	for _, path := range paths {
		file, err := parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
		if err := lib.merge(path, file); err != nil {
			return nil, err
		}
	}

	logger.Info("library loaded",
		"dir", dir,
		"files", len(paths),
		"questions", len(lib.Questions),
		"rules", len(lib.Rules),
		"clauses", len(lib.Clauses),
		"profiles", len(lib.Profiles),
	)
	return lib, nil
}

func (l *Library) merge(source string, file *parser.File) error {
	if file.Policy != nil {
		if l.Policy != nil && l.Policy.Code != file.Policy.Code {
			return fmt.Errorf("%s: policy %q conflicts with already loaded policy %q",
				source, file.Policy.Code, l.Policy.Code)
		}
		l.Policy = file.Policy
	}
	for _, q := range file.Questions {
		if _, dup := l.questionsByCode[q.Code]; dup {
			return fmt.Errorf("%s: duplicate question code %q", source, q.Code)
		}
		l.questionsByCode[q.Code] = q
		l.Questions = append(l.Questions, q)
	}
	for _, c := range file.Clauses {
		if _, dup := l.clausesByCode[c.Code]; dup {
			return fmt.Errorf("%s: duplicate clause code %q", source, c.Code)
		}
		l.clausesByCode[c.Code] = c
		l.Clauses = append(l.Clauses, c)
	}
	for _, p := range file.Profiles {
		if p.ID != "" {
			if _, dup := l.profilesByID[p.ID]; dup {
				return fmt.Errorf("%s: duplicate profile id %q", source, p.ID)
			}
			l.profilesByID[p.ID] = p
		}
		l.Profiles = append(l.Profiles, p)
	}
	l.Rules = append(l.Rules, file.Rules...)
	return nil
}
