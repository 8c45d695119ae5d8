package shim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"shimctl/internal/fail"
	"shimctl/internal/logging"
	"shimctl/internal/project"
)

// staticSource is a BinarySource with a fixed list.
type staticSource []string

func (s staticSource) DirectBinaryNames() ([]string, error) { return s, nil }

type brokenSource struct{ err error }

func (s brokenSource) DirectBinaryNames() ([]string, error) { return nil, s.err }

func noProject(string) (BinarySource, error) { return nil, nil }

func TestAutoshim_CollectsFailures(t *testing.T) {
	reg, _ := newTestRegistry(t)
	if err := reg.Create("b"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	lm := logging.NewTestLogManager()
	scanner := NewScanner(reg, noProject, lm.For("autoshim"))

	created, err := scanner.Autoshim("", staticSource{"a", "b", "c"})
	if diff := cmp.Diff([]string{"a", "c"}, created); diff != "" {
		t.Errorf("created mismatch (-want +got):\n%s", diff)
	}

	var autoErr *AutoshimError
	if !errors.As(err, &autoErr) {
		t.Fatalf("Autoshim() error = %v, want *AutoshimError", err)
	}
	if len(autoErr.Failures) != 1 || autoErr.Failures[0].Name != "b" {
		t.Fatalf("Failures = %+v, want only b", autoErr.Failures)
	}
	var exists *AlreadyExistsError
	if !errors.As(autoErr.Failures[0].Err, &exists) {
		t.Errorf("failure error = %v, want *AlreadyExistsError", autoErr.Failures[0].Err)
	}
	if !autoErr.Failures[0].UserFriendly() {
		t.Error("AlreadyExists failure should be user friendly")
	}
	if !errors.As(err, &exists) {
		t.Error("AutoshimError should unwrap to its failures")
	}
	if err.Error() != "autoshim did not complete without failures" {
		t.Errorf("message = %q", err.Error())
	}
	if fail.CodeOf(err) != fail.UnknownError {
		t.Errorf("CodeOf() = %v, want UnknownError", fail.CodeOf(err))
	}

	names, err := reg.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, names); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	if len(lm.Find("autoshim failed for binary")) != 1 {
		t.Error("expected one logged failure")
	}
	finished := lm.Find("autoshim finished")
	if len(finished) != 1 || finished[0].Field("failures") != "1" {
		t.Errorf("finished entries = %+v", finished)
	}
}

func TestAutoshim_Success(t *testing.T) {
	reg, _ := newTestRegistry(t)
	scanner := NewScanner(reg, noProject, nil)

	created, err := scanner.Autoshim("", staticSource{"eslint", "tsc"})
	if err != nil {
		t.Fatalf("Autoshim() error = %v", err)
	}
	if diff := cmp.Diff([]string{"eslint", "tsc"}, created); diff != "" {
		t.Errorf("created mismatch (-want +got):\n%s", diff)
	}
	names, _ := reg.List()
	if diff := cmp.Diff([]string{"eslint", "tsc"}, names); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestAutoshim_NoAmbientProject(t *testing.T) {
	reg, _ := newTestRegistry(t)
	scanner := NewScanner(reg, noProject, nil)

	_, err := scanner.Autoshim("", nil)

	var notPkg *NotAPackageError
	if !errors.As(err, &notPkg) {
		t.Fatalf("Autoshim() error = %v, want *NotAPackageError", err)
	}
	if notPkg.Path != "." {
		t.Errorf("Path = %q, want %q", notPkg.Path, ".")
	}
}

func TestAutoshim_PathNotAPackage(t *testing.T) {
	reg, _ := newTestRegistry(t)
	scanner := NewScanner(reg, noProject, nil)
	dir := t.TempDir()

	_, err := scanner.Autoshim(dir, staticSource{"ignored"})

	var notPkg *NotAPackageError
	if !errors.As(err, &notPkg) {
		t.Fatalf("Autoshim() error = %v, want *NotAPackageError", err)
	}
	if err.Error() != dir+" is not a node package" {
		t.Errorf("message = %q", err.Error())
	}
	if fail.CodeOf(err) != fail.ConfigurationError {
		t.Errorf("CodeOf() = %v, want ConfigurationError", fail.CodeOf(err))
	}
	if _, statErr := os.Stat(reg.Dir()); !os.IsNotExist(statErr) {
		t.Error("shim directory should be untouched")
	}
}

// locateProject adapts project.ForDir the way the CLI does.
func locateProject(dir string) (BinarySource, error) {
	p, err := project.ForDir(dir)
	if err != nil || p == nil {
		return nil, err
	}
	return p, nil
}

func TestAutoshim_PathIsAFile(t *testing.T) {
	reg, _ := newTestRegistry(t)
	scanner := NewScanner(reg, locateProject, nil)

	pkg := t.TempDir()
	manifest := filepath.Join(pkg, project.ManifestFile)
	notes := filepath.Join(pkg, "notes.txt")
	for path, content := range map[string]string{
		manifest: `{"name": "tool", "bin": "./cli.js"}`,
		notes:    "not a package",
	} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	for _, path := range []string{notes, manifest} {
		_, err := scanner.Autoshim(path, nil)

		var notPkg *NotAPackageError
		if !errors.As(err, &notPkg) {
			t.Fatalf("Autoshim(%q) error = %v, want *NotAPackageError", path, err)
		}
		if notPkg.Path != path {
			t.Errorf("Path = %q, want %q", notPkg.Path, path)
		}
		if fail.CodeOf(err) != fail.ConfigurationError {
			t.Errorf("CodeOf() = %v, want ConfigurationError", fail.CodeOf(err))
		}
		if !fail.IsUserFriendly(err) {
			t.Error("NotAPackageError should be user friendly")
		}
	}
	if _, err := os.Stat(reg.Dir()); !os.IsNotExist(err) {
		t.Error("shim directory should be untouched")
	}
}

func TestAutoshim_ExplicitPath(t *testing.T) {
	reg, _ := newTestRegistry(t)
	pkg := filepath.Join(t.TempDir(), "pkg")

	var located string
	locate := func(dir string) (BinarySource, error) {
		located = dir
		return staticSource{"rimraf"}, nil
	}
	scanner := NewScanner(reg, locate, nil)

	if _, err := scanner.Autoshim(pkg, staticSource{"ambient-only"}); err != nil {
		t.Fatalf("Autoshim() error = %v", err)
	}
	if located != pkg {
		t.Errorf("located %q, want %q", located, pkg)
	}
	names, _ := reg.List()
	if diff := cmp.Diff([]string{"rimraf"}, names); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestAutoshim_SourceErrors(t *testing.T) {
	reg, _ := newTestRegistry(t)
	cause := errors.New("unreadable manifest")

	locateErr := NewScanner(reg, func(string) (BinarySource, error) { return nil, cause }, nil)
	if _, err := locateErr.Autoshim("/work", nil); !errors.Is(err, cause) {
		t.Errorf("Autoshim() error = %v, want %v", err, cause)
	}

	listErr := NewScanner(reg, noProject, nil)
	if _, err := listErr.Autoshim("", brokenSource{err: cause}); !errors.Is(err, cause) {
		t.Errorf("Autoshim() error = %v, want %v", err, cause)
	}
}
