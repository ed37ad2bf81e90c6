// Package gitsource mines before/after file pairs for a commit directly
// from a git repository. Single-parent commits use the mined parent diff;
// multi-parent commits fall back to rendering the first parent's tree as
// the before side. The substitution is invisible to the downstream
// pipeline.
package gitsource

import (
	"fmt"
	"path"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/utils/merkletrie"
	"github.com/src-d/enry/v2"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
)

// Source mines commits from one repository.
type Source struct {
	repoName string
	repo     *git.Repository
	rules    *minimize.PathRules
}

// Open opens the repository at repoPath. repoName becomes the commit
// identity prefix; rules label test and mock files (defaults when nil).
func Open(repoPath, repoName string, rules *minimize.PathRules) (*Source, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", repoPath, err)
	}

	if rules == nil {
		rules = minimize.DefaultPathRules()
	}

	return &Source{repoName: repoName, repo: repo, rules: rules}, nil
}

// Mine produces the file pairs of the commit identified by hash.
// bugInTestCode is the per-commit annotation flag threaded through to the
// classifier.
func (s *Source) Mine(hash string, bugInTestCode bool) (*minimize.Commit, error) {
	commitObj, err := s.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("resolve commit %s: %w", hash, err)
	}

	commit := &minimize.Commit{
		Repo:          s.repoName,
		Hash:          hash,
		BugInTestCode: bugInTestCode,
		IsMerge:       commitObj.NumParents() > 1,
	}

	tree, err := commitObj.Tree()
	if err != nil {
		return nil, fmt.Errorf("resolve tree of %s: %w", hash, err)
	}

	if commitObj.NumParents() == 0 {
		pairs, err := allAsAdditions(tree, s.rules)
		if err != nil {
			return nil, err
		}

		commit.Pairs = pairs

		return commit, nil
	}

	// For merges there is no single linear diff; the first parent's tree
	// stands in as the rendered before view.
	parent, err := commitObj.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("resolve first parent of %s: %w", hash, err)
	}

	parentTree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("resolve parent tree of %s: %w", hash, err)
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("diff trees of %s: %w", hash, err)
	}

	for _, change := range changes {
		pair, err := s.pairFromChange(change)
		if err != nil {
			return nil, err
		}

		commit.Pairs = append(commit.Pairs, pair)
	}

	return commit, nil
}

func (s *Source) pairFromChange(change *object.Change) (minimize.FilePair, error) {
	var pair minimize.FilePair

	action, err := change.Action()
	if err != nil {
		return pair, fmt.Errorf("change action: %w", err)
	}

	fromFile, toFile, err := change.Files()
	if err != nil {
		return pair, fmt.Errorf("change files: %w", err)
	}

	switch action {
	case merkletrie.Insert:
		pair.Path = change.To.Name
		pair.PureAddition = true
	case merkletrie.Delete:
		pair.Path = change.From.Name
		pair.PureDeletion = true
	case merkletrie.Modify:
		pair.Path = change.To.Name
	}

	if fromFile != nil {
		content, err := fromFile.Contents()
		if err != nil {
			return pair, fmt.Errorf("read before side of %s: %w", pair.Path, err)
		}

		pair.Before = content
		pair.HasBefore = true
	}

	if toFile != nil {
		content, err := toFile.Contents()
		if err != nil {
			return pair, fmt.Errorf("read after side of %s: %w", pair.Path, err)
		}

		pair.After = content
		pair.HasAfter = true
	}

	s.label(&pair)

	return pair, nil
}

func allAsAdditions(tree *object.Tree, rules *minimize.PathRules) ([]minimize.FilePair, error) {
	var pairs []minimize.FilePair

	err := tree.Files().ForEach(func(file *object.File) error {
		content, err := file.Contents()
		if err != nil {
			return fmt.Errorf("read %s: %w", file.Name, err)
		}

		pair := minimize.FilePair{
			Path:         file.Name,
			After:        content,
			HasAfter:     true,
			PureAddition: true,
		}

		pair.Language = enry.GetLanguage(path.Base(pair.Path), []byte(content))
		pair.IsTestFile = rules.IsTestPath(pair.Path)
		pair.IsDerivedArtifact = rules.IsMockPath(pair.Path)

		pairs = append(pairs, pair)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return pairs, nil
}

func (s *Source) label(pair *minimize.FilePair) {
	sample := pair.After
	if sample == "" {
		sample = pair.Before
	}

	pair.Language = enry.GetLanguage(path.Base(pair.Path), []byte(sample))
	pair.IsTestFile = s.rules.IsTestPath(pair.Path)
	pair.IsDerivedArtifact = s.rules.IsMockPath(pair.Path)
}
