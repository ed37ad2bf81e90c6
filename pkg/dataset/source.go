package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/src-d/enry/v2"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
)

// Directory names inside each bug folder.
const (
	beforeDir    = "before"
	afterDir     = "after"
	metadataFile = "metadata.json"
)

// Bug couples a loaded commit with its annotation metadata and the folder
// it came from.
type Bug struct {
	Commit *minimize.Commit
	Meta   *Metadata
	Dir    string
}

// Source loads curated bug folders into commits. It is the directory-pair
// implementation of the pipeline's file pair source.
type Source struct {
	rules *minimize.PathRules
}

// NewSource returns a source labelling test and mock files with rules, or
// the default rules when nil.
func NewSource(rules *minimize.PathRules) *Source {
	if rules == nil {
		rules = minimize.DefaultPathRules()
	}

	return &Source{rules: rules}
}

// LoadBug reads one bug folder: the before/after trees and, if present,
// metadata.json. Files present on only one side become pure additions or
// deletions.
func (s *Source) LoadBug(dir string) (*Bug, error) {
	meta, err := s.loadMeta(dir)
	if err != nil {
		return nil, err
	}

	beforeFiles, err := listFiles(filepath.Join(dir, beforeDir))
	if err != nil {
		return nil, fmt.Errorf("list before tree: %w", err)
	}

	afterFiles, err := listFiles(filepath.Join(dir, afterDir))
	if err != nil {
		return nil, fmt.Errorf("list after tree: %w", err)
	}

	paths := unionPaths(beforeFiles, afterFiles)

	commit := &minimize.Commit{
		Repo:          meta.ProjectName,
		Hash:          meta.CommitHash,
		BugInTestCode: meta.BugInTestCode,
		IsMerge:       meta.IsMerge,
	}

	for _, relPath := range paths {
		pair, err := s.loadPair(dir, relPath, beforeFiles[relPath], afterFiles[relPath])
		if err != nil {
			return nil, err
		}

		commit.Pairs = append(commit.Pairs, pair)
	}

	return &Bug{Commit: commit, Meta: meta, Dir: dir}, nil
}

// LoadDataset walks <root>/<repo>/<bug folder> and loads every bug folder,
// in lexical order.
func (s *Source) LoadDataset(root string) ([]*Bug, error) {
	repos, err := sortedSubdirs(root)
	if err != nil {
		return nil, fmt.Errorf("list dataset root: %w", err)
	}

	var bugs []*Bug

	for _, repo := range repos {
		folders, err := sortedSubdirs(filepath.Join(root, repo))
		if err != nil {
			return nil, fmt.Errorf("list repo folder %s: %w", repo, err)
		}

		for _, folder := range folders {
			bug, err := s.LoadBug(filepath.Join(root, repo, folder))
			if err != nil {
				return nil, fmt.Errorf("load bug %s/%s: %w", repo, folder, err)
			}

			bugs = append(bugs, bug)
		}
	}

	return bugs, nil
}

func (s *Source) loadMeta(dir string) (*Metadata, error) {
	metaPath := filepath.Join(dir, metadataFile)

	meta, err := ReadMetadata(metaPath)
	if err == nil {
		return meta, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return metadataFromFolder(filepath.Base(dir)), nil
	}

	return nil, err
}

func (s *Source) loadPair(dir, relPath string, inBefore, inAfter bool) (minimize.FilePair, error) {
	pair := minimize.FilePair{
		Path:         relPath,
		HasBefore:    inBefore,
		HasAfter:     inAfter,
		PureAddition: !inBefore,
		PureDeletion: !inAfter,
	}

	var sample []byte

	if inBefore {
		data, err := os.ReadFile(filepath.Join(dir, beforeDir, filepath.FromSlash(relPath)))
		if err != nil {
			return pair, fmt.Errorf("read before side of %s: %w", relPath, err)
		}

		pair.Before = string(data)
		sample = data
	}

	if inAfter {
		data, err := os.ReadFile(filepath.Join(dir, afterDir, filepath.FromSlash(relPath)))
		if err != nil {
			return pair, fmt.Errorf("read after side of %s: %w", relPath, err)
		}

		pair.After = string(data)
		sample = data
	}

	pair.Language = enry.GetLanguage(path.Base(relPath), sample)
	pair.IsTestFile = s.rules.IsTestPath(relPath)
	pair.IsDerivedArtifact = s.rules.IsMockPath(relPath)

	return pair, nil
}

// listFiles returns the set of slash-separated relative paths under root.
// A missing root directory yields an empty set, since pure-addition bug
// folders may lack a before tree entirely.
func listFiles(root string) (map[string]bool, error) {
	files := make(map[string]bool)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		files[filepath.ToSlash(rel)] = true

		return nil
	})

	if errors.Is(err, fs.ErrNotExist) {
		return files, nil
	}

	if err != nil {
		return nil, err
	}

	return files, nil
}

func unionPaths(before, after map[string]bool) []string {
	set := make(map[string]bool, len(before)+len(after))

	for p := range before {
		set[p] = true
	}

	for p := range after {
		set[p] = true
	}

	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

func sortedSubdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}
