package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWriteSnippets(t *testing.T) {
	t.Run("writes a snippets file into the target package", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/demo\n\ngo 1.25\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.go"), []byte("package demo\n"), 0o644))

		controller := gomock.NewController(t)
		source := NewMockStepSource(controller)
		source.EXPECT().UndefinedSteps().Return([]string{"a clean ledger", "the refund is 42"})

		path, err := WriteSnippets(source, dir)

		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, SnippetsFileName), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		src := string(data)
		require.Contains(t, src, "package demo")
		require.Contains(t, src, "func RegisterPendingSteps")
		require.Contains(t, src, "TheRefundIs42")
	})

	t.Run("writes nothing when every step is defined", func(t *testing.T) {
		dir := t.TempDir()

		controller := gomock.NewController(t)
		source := NewMockStepSource(controller)
		source.EXPECT().UndefinedSteps().Return(nil)

		path, err := WriteSnippets(source, dir)

		require.NoError(t, err)
		require.Empty(t, path)
		_, statErr := os.Stat(filepath.Join(dir, SnippetsFileName))
		require.True(t, os.IsNotExist(statErr))
	})

	t.Run("fails for a missing directory", func(t *testing.T) {
		controller := gomock.NewController(t)
		source := NewMockStepSource(controller)
		source.EXPECT().UndefinedSteps().Return([]string{"a thing"})

		_, err := WriteSnippets(source, filepath.Join(t.TempDir(), "missing"))

		require.Error(t, err)
	})
}

func Test_detectPackageName(t *testing.T) {
	t.Run("reads the package clause of existing files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "x.go"), []byte("package billing\n"), 0o644))

		name, err := detectPackageName(dir)

		require.NoError(t, err)
		require.Equal(t, "billing", name)
	})

	t.Run("derives the name from the module path at the root", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/my-demo\n"), 0o644))

		name, err := detectPackageName(dir)

		require.NoError(t, err)
		require.Equal(t, "my_demo", name)
	})
}

func Test_sanitizePackageName(t *testing.T) {
	t.Run("lowercases and replaces separators", func(t *testing.T) {
		require.Equal(t, "my_pkg_v2", sanitizePackageName("My-Pkg.v2"))
	})

	t.Run("prefixes leading digits", func(t *testing.T) {
		require.Equal(t, "_2fast", sanitizePackageName("2fast"))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		require.Empty(t, sanitizePackageName(""))
		require.Empty(t, sanitizePackageName("."))
	})
}

func Test_detectImportPath(t *testing.T) {
	t.Run("joins the module path with the relative directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/demo\n"), 0o644))
		sub := filepath.Join(root, "internal", "billing")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		path, err := detectImportPath(sub)

		require.NoError(t, err)
		require.Equal(t, "example.com/demo/internal/billing", path)
	})

	t.Run("returns the module path at the root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/demo\n"), 0o644))

		path, err := detectImportPath(root)

		require.NoError(t, err)
		require.Equal(t, "example.com/demo", path)
	})
}
