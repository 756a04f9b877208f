package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		known []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-u", "http://localhost:8080", "-l", "debug"},
			known: []string{"-u"},
			want:  []string{"-u", "http://localhost:8080"},
		},
		{
			name:  "equals form",
			args:  []string{"--config=alt.json", "-u", "x"},
			known: []string{"-c", "--config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "unknown flags and positionals dropped",
			args:  []string{"-x", "1", "--y=2", "positional"},
			known: []string{"-c"},
			want:  []string{},
		},
		{
			name:  "flag without value at end",
			args:  []string{"-c"},
			known: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "next arg is a flag, not a value",
			args:  []string{"-c", "-u"},
			known: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "order preserved",
			args:  []string{"-t", "5", "-u", "h", "-t=7"},
			known: []string{"-t", "-u"},
			want:  []string{"-t", "5", "-u", "h", "-t=7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.known)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-c", "a.json", "-u", "h"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-config=b.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-u", "h"}))
	assert.Equal(t, "", ConfigPath(nil))
}
