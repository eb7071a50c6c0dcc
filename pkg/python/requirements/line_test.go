// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package requirements_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pysetup/pkg/python/requirements"
)

func TestParseLine(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input  string
		Output requirements.Record
	}
	testcases := map[string]testcase{
		"bare": {
			Input:  "six",
			Output: requirements.Record{Line: "six", Package: "six"},
		},
		"ge-with-comment": {
			Input: "numpy>=1.19.0 # comment",
			Output: requirements.Record{
				Line:    "numpy>=1.19.0",
				Package: "numpy",
				Version: &requirements.Constraint{Op: requirements.OpGE, Version: "1.19.0"},
			},
		},
		"platform": {
			Input: `torch>=1.8;platform_system=="Windows"`,
			Output: requirements.Record{
				Line:         `torch>=1.8;platform_system=="Windows"`,
				Package:      "torch",
				Version:      &requirements.Constraint{Op: requirements.OpGE, Version: "1.8"},
				PlatformDeps: strPtr(`platform_system=="Windows"`),
			},
		},
		"platform-spaced": {
			Input: `pkg==1.0 ; sys_platform == 'win32'`,
			Output: requirements.Record{
				Line:         `pkg==1.0 ; sys_platform == 'win32'`,
				Package:      "pkg",
				Version:      &requirements.Constraint{Op: requirements.OpEQ, Version: "1.0"},
				PlatformDeps: strPtr(`sys_platform == 'win32'`),
			},
		},
		"platform-no-version": {
			Input: `foo ; python_version < "3.8"`,
			Output: requirements.Record{
				Line:         `foo ; python_version < "3.8"`,
				Package:      "foo",
				PlatformDeps: strPtr(`python_version < "3.8"`),
			},
		},
		"empty-platform": {
			Input: "foo>=1;",
			Output: requirements.Record{
				Line:         "foo>=1;",
				Package:      "foo",
				Version:      &requirements.Constraint{Op: requirements.OpGE, Version: "1"},
				PlatformDeps: strPtr(""),
			},
		},
		"gt-spaced": {
			Input: "foo > 2.0",
			Output: requirements.Record{
				Line:    "foo > 2.0",
				Package: "foo",
				Version: &requirements.Constraint{Op: requirements.OpGT, Version: "2.0"},
			},
		},
		"leftmost-operator-wins": {
			Input: "foo>2>=3",
			Output: requirements.Record{
				Line:    "foo>2>=3",
				Package: "foo",
				Version: &requirements.Constraint{Op: requirements.OpGT, Version: "2>=3"},
			},
		},
		"unrecognized-operator": {
			Input:  "foo<2",
			Output: requirements.Record{Line: "foo<2", Package: "foo<2"},
		},
		"extras": {
			Input: "foo[bar]>=1.0",
			Output: requirements.Record{
				Line:    "foo[bar]>=1.0",
				Package: "foo[bar]",
				Version: &requirements.Constraint{Op: requirements.OpGE, Version: "1.0"},
			},
		},
		"hash-without-space-is-not-a-comment": {
			Input:  "foo#bar",
			Output: requirements.Record{Line: "foo#bar", Package: "foo#bar"},
		},
		"editable": {
			Input: "-e git+https://a.com/somedep@sometag#egg=SomeDep",
			Output: requirements.Record{
				Line:     "-e git+https://a.com/somedep@sometag#egg=SomeDep",
				Package:  "SomeDep",
				Editable: true,
			},
		},
		"editable-with-operator-in-url": {
			Input: "-e git+https://a.com/x>=2@v1;y#egg=Foo",
			Output: requirements.Record{
				Line:     "-e git+https://a.com/x>=2@v1;y#egg=Foo",
				Package:  "Foo",
				Editable: true,
			},
		},
		"editable-double-egg": {
			Input: "-e git+https://a.com/x#egg=A#egg=B",
			Output: requirements.Record{
				Line:     "-e git+https://a.com/x#egg=A#egg=B",
				Package:  "A",
				Editable: true,
			},
		},
		"editable-egg-comment": {
			Input: "-e git+https://a.com/x#egg=Foo   # pinned",
			Output: requirements.Record{
				Line:     "-e git+https://a.com/x#egg=Foo  ",
				Package:  "Foo",
				Editable: true,
			},
		},
		"editable-no-egg": {
			Input: "-e ./vendor/thing",
			Output: requirements.Record{
				Line:     "-e ./vendor/thing",
				Package:  "./vendor/thing",
				Editable: true,
			},
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ctx := dlog.NewTestContext(t, true)
			recs, err := requirements.ParseLine(ctx, tc.Input, t.TempDir())
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, tc.Output, recs[0])
		})
	}
}

func TestParseLineInclude(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	dir := writeTree(t, map[string]string{
		"other.txt": "six==1.16.0\n# comment\n\nnumpy>=1.19.0\n",
	})

	recs, err := requirements.ParseLine(ctx, "-r other.txt # pull in the others", dir)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "six", recs[0].Package)
	assert.Equal(t, "numpy", recs[1].Package)

	_, err = requirements.ParseLine(ctx, "-r missing.txt", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	var readErr *requirements.ManifestReadError
	require.True(t, errors.As(err, &readErr))
	assert.Contains(t, err.Error(), "missing.txt")
}
