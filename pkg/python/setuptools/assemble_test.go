// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package setuptools_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/derror"
	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pysetup/pkg/python/pysource"
	"github.com/datawire/pysetup/pkg/python/requirements"
	"github.com/datawire/pysetup/pkg/python/setuptools"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		fullname := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(fullname), 0o755))
		require.NoError(t, os.WriteFile(fullname, []byte(content), 0o644))
	}
	return dir
}

func conventionalProject(t *testing.T) string {
	t.Helper()
	return writeTree(t, map[string]string{
		"pycold/__init__.py": "\"\"\"pycold\"\"\"\n__version__ = '0.1.0'\n",
		"README.md":          "# pycold\n",
		"requirements.txt":   "-r requirements/runtime.txt\n-r requirements/tests.txt\n",
		"requirements/runtime.txt": "" +
			"numpy>=1.19.0 # comment\n" +
			`torch>=1.8;platform_system=="Windows"` + "\n",
		"requirements/tests.txt": "pytest>=6.2.0\n-e git+https://example.com/xdoctest@main#egg=xdoctest\n",
		"requirements/build.txt": "scikit-build>0.11.0\n",
	})
}

func TestAssembleDefaultLayout(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	dir := conventionalProject(t)

	cfg := setuptools.DefaultConfig("pycold")
	cfg.Versions = requirements.PinStrict
	md, err := setuptools.Assemble(ctx, cfg, dir)
	require.NoError(t, err)

	assert.Equal(t, "pycold", md.Name)
	assert.Equal(t, "0.1.0", md.Version)
	assert.Equal(t, []string{"numpy==1.19.0", `torch==1.8;platform_system=="Windows"`}, md.InstallRequires)
	assert.Equal(t, map[string][]string{
		"all": {
			"numpy==1.19.0",
			`torch==1.8;platform_system=="Windows"`,
			"pytest==6.2.0",
			"xdoctest",
		},
		"tests":    {"pytest==6.2.0", "xdoctest"},
		"build":    {"scikit-build>0.11.0"},
		"optional": {},
		"headless": {},
		"graphics": {},
	}, md.ExtrasRequire)
	assert.Equal(t, "# pycold\n", md.LongDescription)
	assert.Equal(t, "text/markdown", md.LongDescriptionContentType)
	assert.Nil(t, md.PackageDir)
	assert.Equal(t, []string{"pycold"}, md.Packages)
	assert.True(t, md.IncludePackageData)
}

func TestAssembleSrcLayout(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	dir := writeTree(t, map[string]string{
		"src/python/pycold/__init__.py":              "__version__ = '0.2.0'\n",
		"src/python/pycold/sub/__init__.py":          "",
		"src/python/pycold/sub/deep/__init__.py":     "",
		"src/python/pycold/data/table.csv":           "a,b\n",
		"src/python/pycold/data/nested/__init__.py":  "",
		"src/python/pycold/sub.egg-info/__init__.py": "",
		"src/python/other/__init__.py":               "",
		"src/python/scripts/run.py":                  "",
		"tests/__init__.py":                          "",
	})

	cfg := setuptools.DefaultConfig("pycold")
	cfg.PackageDir = "src/python"
	cfg.VersionFile = "src/python/pycold/__init__.py"
	md, err := setuptools.Assemble(ctx, cfg, dir)
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", md.Version)
	assert.Equal(t, map[string]string{"": "src/python"}, md.PackageDir)
	assert.Equal(t, []string{"other", "pycold", "pycold.sub", "pycold.sub.deep"}, md.Packages)
	assert.True(t, md.IncludePackageData)

	pkgs, err := setuptools.FindPackages(filepath.Join(dir, "nonexistent"))
	require.NoError(t, err)
	assert.Equal(t, []string{}, pkgs)
}

func TestAssembleVersionless(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	dir := conventionalProject(t)

	cfg := setuptools.DefaultConfig("pycold")
	cfg.Readme = "README.rst"
	cfg.PackageDir = "src/python"
	md, err := setuptools.Assemble(ctx, cfg, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"numpy", `torch;platform_system=="Windows"`}, md.InstallRequires)
	assert.Equal(t, "", md.LongDescription)
	assert.Equal(t, "text/x-rst", md.LongDescriptionContentType)
	assert.Equal(t, map[string]string{"": "src/python"}, md.PackageDir)
	assert.Equal(t, []string{}, md.Packages)
}

func TestAssembleErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing-version", func(t *testing.T) {
		t.Parallel()
		ctx := dlog.NewTestContext(t, true)
		dir := writeTree(t, map[string]string{"requirements.txt": "six\n"})
		_, err := setuptools.Assemble(ctx, setuptools.DefaultConfig("pycold"), dir)
		var cfgErr *pysource.ConfigurationError
		require.True(t, errors.As(err, &cfgErr), "err=%v", err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
	t.Run("broken-groups", func(t *testing.T) {
		t.Parallel()
		ctx := dlog.NewTestContext(t, true)
		dir := writeTree(t, map[string]string{
			"pycold/__init__.py":     "__version__ = '0.1.0'\n",
			"requirements/tests.txt": "-r missing-a.txt\n",
			"requirements/build.txt": "-r missing-b.txt\n",
		})
		_, err := setuptools.Assemble(ctx, setuptools.DefaultConfig("pycold"), dir)
		require.Error(t, err)
		var multi derror.MultiError
		require.True(t, errors.As(err, &multi), "err=%v", err)
		require.Len(t, multi, 2)
		assert.Contains(t, multi[0].Error(), `extras_require["build"]`)
		assert.Contains(t, multi[1].Error(), `extras_require["tests"]`)
		var readErr *requirements.ManifestReadError
		assert.True(t, errors.As(multi[0], &readErr))
	})
	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		ctx := dlog.NewTestContext(t, true)
		_, err := setuptools.Assemble(ctx, setuptools.Config{Name: "x"}, t.TempDir())
		assert.EqualError(t, err, "versionFile: must be set")
	})
}
