package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"devtool/internal/config"
	"devtool/internal/runner"

	"github.com/stretchr/testify/require"
)

// recordingExecutor remembers every step and fails the ones listed in errs.
type recordingExecutor struct {
	steps []runner.Step
	errs  map[string]error
}

func (r *recordingExecutor) Run(_ context.Context, step runner.Step) error {
	r.steps = append(r.steps, step)
	return r.errs[step.Name]
}

func (r *recordingExecutor) argvs() [][]string {
	out := make([][]string, 0, len(r.steps))
	for _, s := range r.steps {
		out = append(out, s.Argv())
	}
	return out
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *recordingExecutor) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.Package = "auryn"
	exec := &recordingExecutor{}
	d := New(cfg, exec)
	d.Out = &bytes.Buffer{}
	return d, exec
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	mkdir(t, filepath.Dir(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
}

func TestParseCommand(t *testing.T) {
	for _, c := range Commands() {
		got, err := ParseCommand(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
		require.NotEmpty(t, c.Description())
	}

	_, err := ParseCommand("deploy")
	var unknown *UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "unknown command deploy", err.Error())
}

func TestRun_UnknownCommand(t *testing.T) {
	d, exec := newTestDispatcher(t)

	for _, name := range []string{"deploy", "Clean", "", "--help", "tests"} {
		err := d.Run(context.Background(), []string{name, "extra"})
		var unknown *UnknownCommandError
		require.ErrorAs(t, err, &unknown, "input %q", name)
		require.Contains(t, err.Error(), "unknown command "+name)
	}
	require.Empty(t, exec.steps)
}

func TestRun_NoCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	require.ErrorIs(t, d.Run(context.Background(), nil), ErrNoCommand)
}

func TestRun_CleanAndCovWithArgsAreUnknown(t *testing.T) {
	d, exec := newTestDispatcher(t)

	for _, name := range []string{"clean", "cov"} {
		err := d.Run(context.Background(), []string{name, "now"})
		var unknown *UnknownCommandError
		require.ErrorAs(t, err, &unknown)
		require.Equal(t, "unknown command "+name, err.Error())
	}
	require.Empty(t, exec.steps)
}

func TestDispatch_RejectsArgsForCleanAndCov(t *testing.T) {
	d, exec := newTestDispatcher(t)

	for _, cmd := range []Command{Clean, Cov} {
		err := d.Dispatch(context.Background(), cmd, []string{"now"})
		var unexpected *UnexpectedArgsError
		require.ErrorAs(t, err, &unexpected)
	}
	require.Empty(t, exec.steps)
}

func TestTest_KeywordFilters(t *testing.T) {
	d, exec := newTestDispatcher(t)

	require.NoError(t, d.Run(context.Background(), []string{"test", "foo", "bar"}))

	require.Equal(t, [][]string{
		{"pytest", "tests", "-x", "-vv", "--ff", "-k", "foo", "-k", "bar"},
	}, exec.argvs())
}

func TestTest_ToolFailureIsNotAnError(t *testing.T) {
	d, exec := newTestDispatcher(t)
	exec.errs = map[string]error{"test": &runner.ExitError{Code: 1}}

	require.NoError(t, d.Test(context.Background(), nil))
	require.Len(t, exec.steps, 1)
}

func TestLint_DefaultsToPackageAndTests(t *testing.T) {
	d, exec := newTestDispatcher(t)
	pkg := d.Config.PackageRoot()
	tests := d.Config.TestsRoot()

	require.NoError(t, d.Lint(context.Background(), nil))

	require.Equal(t, [][]string{
		{"black", "--line-length=120", pkg},
		{"isort", "--profile=black", pkg},
		{"flake8", "--max-line-length=120", "--extend-ignore=E203", pkg},
		{"black", "--line-length=120", tests},
		{"isort", "--profile=black", tests},
		{"flake8", "--max-line-length=120", "--extend-ignore=E203", tests},
	}, exec.argvs())
}

func TestResolveLintPaths(t *testing.T) {
	d, _ := newTestDispatcher(t)
	pkg := d.Config.PackageRoot()
	mkdir(t, filepath.Join(pkg, "module", "sub"))
	writeFile(t, filepath.Join(pkg, "module", "other.py"))

	paths, err := ResolveLintPaths(d.Config, []string{"module.sub", "module.other"})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(pkg, "module", "sub"),
		filepath.Join(pkg, "module", "other.py"),
	}, paths)

	paths, err = ResolveLintPaths(d.Config, nil)
	require.NoError(t, err)
	require.Equal(t, []string{pkg, d.Config.TestsRoot()}, paths)
}

func TestResolveLintPaths_DirectoryWinsOverFile(t *testing.T) {
	d, _ := newTestDispatcher(t)
	pkg := d.Config.PackageRoot()
	mkdir(t, filepath.Join(pkg, "both"))
	writeFile(t, filepath.Join(pkg, "both.py"))

	paths, err := ResolveLintPaths(d.Config, []string{"both"})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(pkg, "both")}, paths)
}

func TestLint_NotFoundStartsNoTool(t *testing.T) {
	d, exec := newTestDispatcher(t)
	writeFile(t, filepath.Join(d.Config.PackageRoot(), "present.py"))

	err := d.Run(context.Background(), []string{"lint", "present", "nonexistent_module"})

	var notFound *PathNotFoundError
	require.ErrorAs(t, err, &notFound)
	want := filepath.Join(d.Config.PackageRoot(), "nonexistent_module.py")
	require.Equal(t, want, notFound.Path)
	require.Equal(t, want+" does not exist", err.Error())
	require.True(t, errors.Is(err, fs.ErrNotExist))
	require.Empty(t, exec.steps)
}

func TestLint_FileUsedAsDirectory(t *testing.T) {
	d, exec := newTestDispatcher(t)
	writeFile(t, filepath.Join(d.Config.PackageRoot(), "core.py"))

	err := d.Lint(context.Background(), []string{"core.py.inner"})

	var notFound *PathNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Empty(t, exec.steps)
}

func TestLint_ContinuesAfterToolFailure(t *testing.T) {
	d, exec := newTestDispatcher(t)
	exec.errs = map[string]error{"format": &runner.ExitError{Code: 123}}
	writeFile(t, filepath.Join(d.Config.PackageRoot(), "core.py"))

	require.NoError(t, d.Lint(context.Background(), []string{"core"}))

	require.Len(t, exec.steps, 3)
	require.Equal(t, "black", exec.steps[0].Command)
	require.Equal(t, "isort", exec.steps[1].Command)
	require.Equal(t, "flake8", exec.steps[2].Command)
}

func TestLint_StopsWhenToolCannotStart(t *testing.T) {
	d, exec := newTestDispatcher(t)
	startErr := errors.New("executable file not found")
	exec.errs = map[string]error{"format": startErr}
	writeFile(t, filepath.Join(d.Config.PackageRoot(), "core.py"))

	err := d.Lint(context.Background(), []string{"core"})
	require.ErrorIs(t, err, startErr)
	require.Len(t, exec.steps, 1)
}

// interruptingExecutor cancels the run while its step is running, the way
// SIGINT reaches both dev and the tool it started.
type interruptingExecutor struct {
	cancel context.CancelFunc
	runs   int
}

func (e *interruptingExecutor) Run(_ context.Context, step runner.Step) error {
	e.runs++
	e.cancel()
	return &runner.ExitError{Step: step, Code: -1}
}

func TestLint_InterruptStopsSequence(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exec := &interruptingExecutor{cancel: cancel}
	d.Exec = exec

	err := d.Lint(ctx, nil)

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, exec.runs)
}

func TestType(t *testing.T) {
	d, exec := newTestDispatcher(t)

	require.NoError(t, d.Run(context.Background(), []string{"type", "a", "b"}))
	require.NoError(t, d.Run(context.Background(), []string{"type"}))

	require.Equal(t, [][]string{
		{"mypy", "-p", "auryn.a", "-p", "auryn.b"},
		{"mypy", "-p", "auryn"},
	}, exec.argvs())
}

func TestCov_RunsCoverageThenServes(t *testing.T) {
	d, exec := newTestDispatcher(t)
	out := &bytes.Buffer{}
	d.Out = out

	var servedDir, servedAddr string
	d.Serve = func(ctx context.Context, dir, addr string, ready func(string)) error {
		require.Len(t, exec.steps, 1, "coverage must finish before serving")
		servedDir, servedAddr = dir, addr
		ready("http://" + addr)
		return context.Canceled
	}

	require.NoError(t, d.Run(context.Background(), []string{"cov"}))

	require.Equal(t, [][]string{{"pytest", "--cov=auryn", "--cov-report=html", "tests"}}, exec.argvs())
	require.Equal(t, filepath.Join(d.Config.Root, "htmlcov"), servedDir)
	require.Equal(t, "localhost:5000", servedAddr)
	require.Equal(t, "http://localhost:5000\n", out.String())
}

func TestCov_InterruptDuringCoverageDoesNotServe(t *testing.T) {
	d, _ := newTestDispatcher(t)
	out := &bytes.Buffer{}
	d.Out = out
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Exec = &interruptingExecutor{cancel: cancel}

	served := false
	d.Serve = func(ctx context.Context, dir, addr string, ready func(string)) error {
		served = true
		return nil
	}

	err := d.Cov(ctx)

	require.ErrorIs(t, err, context.Canceled)
	require.False(t, served)
	require.Empty(t, out.String())
}

func TestCov_RealServerStopsOnCancel(t *testing.T) {
	d, _ := newTestDispatcher(t)
	d.Config.Coverage.Host = "127.0.0.1"
	d.Config.Coverage.Port = 0
	writeFile(t, filepath.Join(d.Config.ReportRoot(), "index.html"))

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan string, 1)
	d.Serve = func(ctx context.Context, dir, addr string, ready func(string)) error {
		return d.defaultServe(ctx, dir, addr, func(url string) {
			ready(url)
			served <- url
		})
	}

	done := make(chan error, 1)
	go func() { done <- d.Cov(ctx) }()

	<-served
	cancel()
	require.NoError(t, <-done)
}

func TestClean(t *testing.T) {
	d, exec := newTestDispatcher(t)
	root := d.Config.Root

	writeFile(t, filepath.Join(root, ".coverage"))
	writeFile(t, filepath.Join(root, ".coverage.bak"))
	writeFile(t, filepath.Join(root, "htmlcov", "index.html"))
	writeFile(t, filepath.Join(root, "auryn", ".mypy_cache", "3.12", "meta.json"))
	writeFile(t, filepath.Join(root, "tests", "deep", ".pytest_cache", "v", "lastfailed"))
	writeFile(t, filepath.Join(root, "tests", "deep", ".coverage"))
	writeFile(t, filepath.Join(root, "tests", "test_htmlcov.py"))
	writeFile(t, filepath.Join(root, "auryn", "core.py"))

	removed, err := d.Clean(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(root, ".coverage"),
		filepath.Join(root, "htmlcov"),
		filepath.Join(root, "auryn", ".mypy_cache"),
		filepath.Join(root, "tests", "deep", ".pytest_cache"),
		filepath.Join(root, "tests", "deep", ".coverage"),
	}, removed)

	for _, gone := range removed {
		_, err := os.Stat(gone)
		require.True(t, errors.Is(err, fs.ErrNotExist), "%s should be removed", gone)
	}
	for _, kept := range []string{
		filepath.Join(root, ".coverage.bak"),
		filepath.Join(root, "tests", "test_htmlcov.py"),
		filepath.Join(root, "auryn", "core.py"),
		filepath.Join(root, "tests", "deep"),
	} {
		_, err := os.Stat(kept)
		require.NoError(t, err, "%s should be kept", kept)
	}
	require.Empty(t, exec.steps)
}

func TestClean_Idempotent(t *testing.T) {
	d, _ := newTestDispatcher(t)
	writeFile(t, filepath.Join(d.Config.Root, "htmlcov", "index.html"))

	first, err := d.Clean(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := d.Clean(context.Background())
	require.NoError(t, err)
	require.Empty(t, second)

	require.NoError(t, d.Run(context.Background(), []string{"clean"}))
}

func TestClean_SymlinkRemovedNotFollowed(t *testing.T) {
	d, _ := newTestDispatcher(t)
	target := filepath.Join(t.TempDir(), "elsewhere")
	writeFile(t, filepath.Join(target, "keep.txt"))
	link := filepath.Join(d.Config.Root, ".mypy_cache")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	removed, err := d.Clean(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{link}, removed)

	_, err = os.Stat(filepath.Join(target, "keep.txt"))
	require.NoError(t, err)
}
