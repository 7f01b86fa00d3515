// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigerwill90/trie"
)

const table = `# test routes
/users/:id              user
/users/me               me
/files/{name}.{ext}     file
/static/**

/Docs/Index             docs
`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestMatchCmd(t *testing.T) {
	routes := writeTable(t, table)

	cases := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "parameter",
			args: []string{"match", "-r", routes, "/users/42"},
			want: "/users/42\tuser id=42\n",
		},
		{
			name: "constant",
			args: []string{"match", "-r", routes, "/users/me"},
			want: "/users/me\tme\n",
		},
		{
			name: "partial",
			args: []string{"match", "-r", routes, "/files/report.pdf"},
			want: "/files/report.pdf\tfile name=report ext=pdf\n",
		},
		{
			name: "catchall without label",
			args: []string{"match", "-r", routes, "/static/css/app.css"},
			want: "/static/css/app.css\t/static/** **=css/app.css\n",
		},
		{
			name: "no match",
			args: []string{"match", "-r", routes, "/docs/index"},
			want: "/docs/index\tno match\n",
		},
		{
			name: "case insensitive",
			args: []string{"match", "-i", "-r", routes, "/docs/index"},
			want: "/docs/index\tdocs\n",
		},
		{
			name:    "strict mode fails on miss",
			args:    []string{"match", "--strict", "-r", routes, "/users/1", "/nope"},
			want:    "/users/1\tuser id=1\n/nope\tno match\n",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := execute(t, tc.args...)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, stdout)
		})
	}
}

func TestRoutesCmd(t *testing.T) {
	routes := writeTable(t, table)
	stdout, _, err := execute(t, "routes", "-r", routes)
	require.NoError(t, err)
	assert.Equal(t, `/Docs/Index	docs
/files/{name}.{ext}	file
/static/**	/static/**
/users/me	me
/users/:id	user
5 routes
`, stdout)
}

func TestTreeCmd(t *testing.T) {
	routes := writeTable(t, "/a/:b\n/a/c\n")
	stdout, _, err := execute(t, "tree", "-r", routes)
	require.NoError(t, err)
	assert.Equal(t, "segment: /\n    segment: a\n        segment: c [leaf=/a/c]\n        segment: :b [leaf=/a/:b]\n", stdout)
}

func TestLoadRouterErrors(t *testing.T) {
	t.Run("missing routes flag", func(t *testing.T) {
		_, _, err := execute(t, "routes")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "routes", "-r", filepath.Join(t.TempDir(), "missing.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid route", func(t *testing.T) {
		routes := writeTable(t, "/a/**/b\n")
		_, _, err := execute(t, "routes", "-r", routes)
		assert.ErrorIs(t, err, trie.ErrCatchallNotLast)
		assert.ErrorContains(t, err, "line 1")
	})

	t.Run("too many fields", func(t *testing.T) {
		routes := writeTable(t, "/a out extra\n")
		_, _, err := execute(t, "routes", "-r", routes)
		assert.ErrorContains(t, err, "line 1: expected a pattern and an optional label, got 3 fields")
	})

	t.Run("verbose logs registrations", func(t *testing.T) {
		routes := writeTable(t, "/a\n/a\n")
		_, stderr, err := execute(t, "routes", "-v", "-r", routes)
		require.NoError(t, err)
		assert.Contains(t, stderr, "route registered")
		assert.Contains(t, stderr, "overriding route")
	})
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitPath("//a/b/"))
	assert.Empty(t, splitPath("/"))
}
