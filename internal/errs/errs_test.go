package errs

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := NameConflict("Project One.txt")
	assert.Equal(t, `NAME_CONFLICT: a file named "Project One.txt" already exists`, err.Error())
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{name: "matching code", err: FileBusy("2024-01-05.txt"), code: CodeFileBusy, want: true},
		{name: "different code", err: FileBusy("2024-01-05.txt"), code: CodeNotFound, want: false},
		{name: "wrapped error", err: fmt.Errorf("open journal: %w", NotFound("2024-01-05.txt")), code: CodeNotFound, want: true},
		{name: "plain error", err: errors.New("boom"), code: CodeIO, want: false},
		{name: "nil error", err: nil, code: CodeIO, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Is(tt.err, tt.code))
		})
	}
}

func TestIOUnwrap(t *testing.T) {
	cause := os.ErrPermission
	err := IO("write projects/draft.txt", cause)

	assert.True(t, Is(err, CodeIO))
	assert.True(t, errors.Is(err, os.ErrPermission))
}
