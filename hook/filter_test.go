package hook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilter(t *testing.T) {
	filter, err := CompileFilter("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFilter, filter.String())

	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{
			name:  "database write",
			event: Event{Name: "library.db", DBName: "library.db", Op: "WRITE"},
			want:  true,
		},
		{
			name:  "journal created",
			event: Event{Name: "library.db-journal", DBName: "library.db", Op: "CREATE"},
			want:  true,
		},
		{
			name:  "combined op",
			event: Event{Name: "library.db", DBName: "library.db", Op: "CREATE|WRITE"},
			want:  true,
		},
		{
			name:  "chmod only",
			event: Event{Name: "library.db", DBName: "library.db", Op: "CHMOD"},
			want:  false,
		},
		{
			name:  "unrelated file",
			event: Event{Name: "state.pickle", DBName: "library.db", Op: "WRITE"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filter.Match(tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCustomFilter(t *testing.T) {
	filter, err := CompileFilter(`Name == DBName && Op contains "WRITE"`)
	require.NoError(t, err)

	got, err := filter.Match(Event{Name: "library.db", DBName: "library.db", Op: "CREATE|WRITE"})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = filter.Match(Event{Name: "library.db-journal", DBName: "library.db", Op: "WRITE"})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCompileFilterErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{name: "syntax error", expression: `Name ==`},
		{name: "unknown field", expression: `Size > 10`},
		{name: "not a bool", expression: `Name`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileFilter(tt.expression)
			require.Error(t, err)

			var filterErr *FilterError
			require.True(t, errors.As(err, &filterErr))
			assert.Equal(t, tt.expression, filterErr.Expression)
			assert.Contains(t, err.Error(), "failed to compile expression")
		})
	}
}
