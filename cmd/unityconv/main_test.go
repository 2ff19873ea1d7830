// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scene = "%YAML 1.1\n" +
	"%TAG !u! tag:unity3d.com,2011:\n" +
	"--- !u!1 &100\n" +
	"GameObject:\n" +
	"  m_Name: Foo\n" +
	"--- !u!4 &200 stripped\n" +
	"Transform:\n" +
	"  m_GameObject: {fileID: 100}\n"

const sceneText = "%YAML 1.1\n" +
	"%TAG !u! tag:unity3d.com,2011:\n" +
	"--- !u!1 &100\n" +
	"GameObject:\n" +
	"  id: 100\n" +
	"  m_Name: Foo\n" +
	"--- !u!4 &200\n" +
	"Transform:\n" +
	"  id: 200\n" +
	"  m_GameObject: {fileID: 100}\n"

const sceneJSON = `[{"GameObject":{"id":"100","m_Name":"Foo"}},{"Transform":{"id":"200","m_GameObject":{"fileID":100}}}]`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = prev
		pterm.EnableStyling()
	})

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	ctx := zerolog.Nop().WithContext(context.Background())
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        func(dir string) []string
		config      string
		want        string
		wantOut     []string
		errContains string
	}{
		{
			name:    "root_converts_directory",
			args:    func(dir string) []string { return []string{dir} },
			want:    sceneText,
			wantOut: []string{"Level.unity", "1 converted"},
		},
		{
			name: "convert_subcommand_json",
			args: func(dir string) []string {
				return []string{"convert", "--format", "json", filepath.Join(dir, "Assets", "Level.unity")}
			},
			want: sceneJSON,
		},
		{
			name:   "config_file_format",
			config: "format: json\natomic: true\n",
			args: func(dir string) []string {
				return []string{"--config", filepath.Join(dir, "unityconv.yaml"), dir}
			},
			want:    sceneJSON,
			wantOut: []string{"using config", "unityconv.yaml"},
		},
		{
			name:   "flag_overrides_config",
			config: "format: json\n",
			args: func(dir string) []string {
				return []string{"-c", filepath.Join(dir, "unityconv.yaml"), "-f", "text", dir}
			},
			want: sceneText,
		},
		{
			name:   "ignore_from_config",
			config: "ignore:\n  - \"Assets/**\"\n",
			args: func(dir string) []string {
				return []string{"--config", filepath.Join(dir, "unityconv.yaml"), dir}
			},
			want: scene,
		},
		{
			name:    "dry_run_prints_diff",
			args:    func(dir string) []string { return []string{"--dry-run", dir} },
			want:    scene,
			wantOut: []string{"+  id: 100", "1 previewed"},
		},
		{
			name:        "bad_format",
			args:        func(dir string) []string { return []string{"--format", "xml", dir} },
			want:        scene,
			errContains: "unknown format",
		},
		{
			name:        "undecodable_yaml_version",
			args:        func(dir string) []string { return []string{"-f", "json", "--yaml-version", "1.2", dir} },
			want:        scene,
			errContains: "not supported",
		},
		{
			name:        "bad_jobs",
			args:        func(dir string) []string { return []string{"--jobs=-1", dir} },
			want:        scene,
			errContains: "jobs",
		},
		{
			name:        "missing_path",
			args:        func(dir string) []string { return []string{filepath.Join(dir, "nope")} },
			want:        scene,
			errContains: "selecting files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			asset := writeFile(t, filepath.Join(dir, "Assets", "Level.unity"), scene)
			if tt.config != "" {
				writeFile(t, filepath.Join(dir, "unityconv.yaml"), tt.config)
			}

			out, err := execute(t, tt.args(dir)...)
			if tt.errContains != "" {
				require.Error(t, err, "command should fail")
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err, "command should succeed")
			}

			assert.Equal(t, tt.want, readFile(t, asset), "asset content should match")
			for _, s := range tt.wantOut {
				assert.Contains(t, out, s, "output should mention %q", s)
			}
		})
	}
}

func TestIndexCommand(t *testing.T) {
	dir := t.TempDir()
	asset := writeFile(t, filepath.Join(dir, "Player.prefab"), sceneJSON)

	out, err := execute(t, "index", asset)
	require.NoError(t, err)
	assert.Contains(t, out, "100")
	assert.Contains(t, out, "GameObject")
	assert.Contains(t, out, "Transform")

	out, err = execute(t, "index", "--id", "200", asset)
	require.NoError(t, err)
	assert.Contains(t, out, "Transform")
	assert.NotContains(t, out, "GameObject")

	out, err = execute(t, "index", "--types", asset)
	require.NoError(t, err)
	assert.Contains(t, out, "1  GameObject")

	_, err = execute(t, "index", "--id", "999", asset)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no object with id")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "unityconv version info")
	assert.Contains(t, out, "Go:")
}
