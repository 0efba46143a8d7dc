package usecase

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	"github.com/m-mizutani/ghrelease/pkg/utils/glob"
	"github.com/m-mizutani/goerr/v2"
)

type selector struct {
	prober interfaces.ContentTypeProber
	logger *slog.Logger
	openFS func(root string) fs.FS
}

// SelectorOption configures the Artifact Selector
type SelectorOption func(*selector)

// WithProber replaces the default content type prober
func WithProber(prober interfaces.ContentTypeProber) SelectorOption {
	return func(s *selector) {
		s.prober = prober
	}
}

// WithSelectorLogger sets the log sink of the selector
func WithSelectorLogger(logger *slog.Logger) SelectorOption {
	return func(s *selector) {
		s.logger = logger
	}
}

// WithFS replaces os.DirFS as the way the root directory is opened
func WithFS(openFS func(root string) fs.FS) SelectorOption {
	return func(s *selector) {
		s.openFS = openFS
	}
}

// NewSelector creates the Artifact Selector
func NewSelector(opts ...SelectorOption) interfaces.AssetSelector {
	s := &selector{
		prober: MimeProber{},
		logger: slog.Default(),
		openFS: os.DirFS,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// compileSelection compiles include and exclude patterns. Nothing is walked when any
// pattern is malformed.
func compileSelection(spec *model.AssetSelectionSpec) (*glob.Matcher, error) {
	includes := nonBlank(spec.Includes)
	if len(includes) == 0 {
		return nil, goerr.New("includes cannot be blank",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "includes"))
	}

	inc, err := glob.CompileAll(includes)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid include pattern",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "includes"))
	}

	excludes := nonBlank(spec.Excludes)
	if spec.DefaultExcludes {
		excludes = append(excludes, glob.DefaultExcludes...)
	}
	exc, err := glob.CompileAll(excludes)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid exclude pattern",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "excludes"))
	}

	return glob.NewMatcher(inc, exc), nil
}

// Select walks the root directory and returns matching regular files ordered by
// relative path
func (s *selector) Select(ctx context.Context, spec *model.AssetSelectionSpec) ([]*model.SelectedAsset, error) {
	matcher, err := compileSelection(spec)
	if err != nil {
		return nil, err
	}

	root := spec.RootDirectory
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve root directory",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "rootDirectory"),
			goerr.V("root", root))
	}

	fsys := s.openFS(root)
	info, err := fs.Stat(fsys, ".")
	if err != nil {
		return nil, goerr.Wrap(err, "root directory is not accessible",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "rootDirectory"),
			goerr.V("root", root))
	}
	if !info.IsDir() {
		return nil, goerr.New("root directory is not a directory",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "rootDirectory"),
			goerr.V("root", root))
	}

	var candidates []string
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !s.isRegularFile(fsys, p, d) {
			return nil
		}
		if matcher.Match(p) {
			candidates = append(candidates, p)
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk root directory", goerr.V("root", root))
	}

	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	assets := make([]*model.SelectedAsset, 0, len(candidates))
	for _, rel := range candidates {
		assets = append(assets, &model.SelectedAsset{
			AbsolutePath: filepath.Join(absRoot, filepath.FromSlash(rel)),
			RelativePath: rel,
			ContentType:  inferContentType(s.prober, fsys, rel, s.logger),
		})
	}

	s.logger.Info("Selected release assets",
		"root", absRoot,
		"count", len(assets),
	)

	return assets, nil
}

// isRegularFile follows symlinks; a symlink is kept only when its target is a regular file
func (s *selector) isRegularFile(fsys fs.FS, p string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}

	info, err := fs.Stat(fsys, p)
	if err != nil {
		s.logger.Debug("Skipping unreadable symlink", "path", p, "error", err)
		return false
	}
	return info.Mode().IsRegular()
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
