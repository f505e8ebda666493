package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassesCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		budget      int
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "small sizes share the 8-byte class",
			args:        []string{"1", "5", "8"},
			budget:      1 << 16,
			wantContain: []string{"REQUEST", "8,192", "pool"},
		},
		{
			name:        "over budget goes to heap",
			args:        []string{"70000"},
			budget:      1 << 16,
			wantContain: []string{"70,000", "131,072", "heap"},
		},
		{
			name:    "non-numeric size",
			args:    []string{"ten"},
			budget:  1 << 16,
			wantErr: true,
		},
		{
			name:    "zero size",
			args:    []string{"0"},
			budget:  1 << 16,
			wantErr: true,
		},
		{
			name:    "bad budget",
			args:    []string{"8"},
			budget:  0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			budget = tt.budget

			out, err := captureOutput(t, func() error { return runClasses(tt.args) })
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				require.Contains(t, out, want)
			}
		})
	}
}

func TestClassesCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true

	out, err := captureOutput(t, func() error { return runClasses([]string{"5", "9", "100000"}) })
	require.NoError(t, err)

	var rows []ClassRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Equal(t, []ClassRow{
		{Request: 5, Key: 3, ClassSize: 8, Blocks: 8192, Pooled: true},
		{Request: 9, Key: 4, ClassSize: 16, Blocks: 4096, Pooled: true},
		{Request: 100000, Key: 17, ClassSize: 131072, Pooled: false},
	}, rows)
}
