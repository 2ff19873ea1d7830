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

package operation

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/walteh/unityconv/pkg/config"
	"github.com/walteh/unityconv/pkg/rewrite"
	"github.com/walteh/unityconv/pkg/status"
)

// 🔧 MockReporter records progress callbacks
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Start(ctx context.Context, total int) {
	m.Called(ctx, total)
}

func (m *MockReporter) File(ctx context.Context, ev status.FileEvent) {
	m.Called(ctx, ev)
}

func (m *MockReporter) Finish(ctx context.Context, summary status.Summary) {
	m.Called(ctx, summary)
}

func outcomeIs(path string, outcome status.Outcome) any {
	return mock.MatchedBy(func(ev status.FileEvent) bool {
		return ev.Path == path && ev.Outcome == outcome
	})
}

func TestRun_Sequential(t *testing.T) {
	dir := t.TempDir()
	first := writeAsset(t, dir, "a.unity", prefabInput)
	second := writeAsset(t, dir, "b.prefab", prefabText)

	reporter := &MockReporter{}
	reporter.On("Start", mock.Anything, 2).Once()
	reporter.On("File", mock.Anything, outcomeIs(first, status.OutcomeConverted)).Once()
	reporter.On("File", mock.Anything, outcomeIs(second, status.OutcomeUnchanged)).Once()
	reporter.On("Finish", mock.Anything, mock.MatchedBy(func(s status.Summary) bool {
		return s.Total == 2 && s.Converted == 1 && s.Unchanged == 1
	})).Once()

	c := New(Options{Rewrite: rewrite.DefaultOptions(rewrite.ModeText), Reporter: reporter})
	summary, err := c.Run(testContext(), []string{first, second})
	require.NoError(t, err, "Run should succeed")

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, prefabText, readAsset(t, first))
	assert.Equal(t, prefabText, readAsset(t, second))
	reporter.AssertExpectations(t)
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name          string
		keepGoing     bool
		wantConverted int
		wantFailed    int
		wantLast      string
	}{
		{
			name:          "first_error_aborts",
			wantConverted: 1,
			wantFailed:    1,
			wantLast:      prefabInput,
		},
		{
			name:          "keep_going_converts_the_rest",
			keepGoing:     true,
			wantConverted: 2,
			wantFailed:    1,
			wantLast:      prefabText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			paths := []string{
				writeAsset(t, dir, "a.unity", prefabInput),
				filepath.Join(dir, "missing.unity"),
				writeAsset(t, dir, "c.unity", prefabInput),
			}

			c := New(Options{
				Rewrite:   rewrite.DefaultOptions(rewrite.ModeText),
				KeepGoing: tt.keepGoing,
			})
			summary, err := c.Run(testContext(), paths)
			require.Error(t, err, "Run should report the missing file")
			assert.Contains(t, err.Error(), "missing.unity")

			assert.Equal(t, 3, summary.Total)
			assert.Equal(t, tt.wantConverted, summary.Converted)
			assert.Equal(t, tt.wantFailed, summary.Failed)
			assert.Equal(t, prefabText, readAsset(t, paths[0]), "files before the failure stay converted")
			assert.Equal(t, tt.wantLast, readAsset(t, paths[2]))
		})
	}
}

func TestRun_Parallel(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 12; i++ {
		paths = append(paths, writeAsset(t, dir, fmt.Sprintf("Level%02d.unity", i), prefabInput))
	}
	// the same file twice must not race with itself
	paths = append(paths, paths[0])

	c := New(Options{Rewrite: rewrite.DefaultOptions(rewrite.ModeText), Jobs: 4, Atomic: true})
	summary, err := c.Run(testContext(), paths)
	require.NoError(t, err, "parallel run should succeed")

	assert.Equal(t, len(paths), summary.Total)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, len(paths), summary.Converted+summary.Unchanged)
	for _, path := range paths {
		assert.Equal(t, prefabText, readAsset(t, path), "every file should be converted once")
	}
}

func TestRun_ParallelKeepGoing(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeAsset(t, dir, "good.prefab", prefabInput),
		writeAsset(t, dir, "bad.prefab", malformedInput),
		writeAsset(t, dir, "also_good.prefab", prefabInput),
	}

	c := New(Options{Rewrite: rewrite.DefaultOptions(rewrite.ModeJSON), Jobs: 2, KeepGoing: true, Atomic: true})
	summary, err := c.Run(testContext(), paths)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.prefab")

	assert.Equal(t, 2, summary.Converted)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, malformedInput, readAsset(t, paths[1]), "atomic mode leaves the failed file alone")
}

func TestRun_Cancelled(t *testing.T) {
	path := writeAsset(t, t.TempDir(), "a.unity", prefabInput)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	summary, err := New(Options{}).Run(ctx, []string{path})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Converted)
	assert.Equal(t, prefabInput, readAsset(t, path))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Format = "json"
	cfg.Atomic = true
	cfg.Jobs = 3
	require.NoError(t, cfg.Validate())

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, rewrite.ModeJSON, opts.Rewrite.Mode)
	assert.True(t, opts.Rewrite.DropTagDirectives)
	assert.True(t, opts.Atomic)
	assert.Equal(t, 3, opts.Jobs)
}
