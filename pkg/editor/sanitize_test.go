package editor

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeContent_SizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Under Limit", DefaultMaxContentSize - 1, false},
		{"Exact Limit", DefaultMaxContentSize, false},
		{"Over Limit", DefaultMaxContentSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeContent(strings.Repeat("a", tt.size), 0)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrContentTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeContent_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Hello World", "Hello World"},
		{"Safe Controls", "Line1\nLine2\tTabbed\r", "Line1\nLine2\tTabbed\r"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"},
		{"Null Byte", "Null\x00Byte", "NullByte"},
		{"Bell", "Ding\x07", "Ding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeContent(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeContent_InvalidUTF8(t *testing.T) {
	_, err := SanitizeContent("bad\xff", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidContent)
}

func TestSession_SetContentSanitizes(t *testing.T) {
	ctx := context.Background()
	s := New(WithMaxContentSize(8), WithAssertions(true))
	root := s.Current().ID()

	require.NoError(t, s.SetContent(ctx, root, "a\x00b"))
	text, err := s.Current().Content()
	require.NoError(t, err)
	assert.Equal(t, "ab", text)

	err = s.SetContent(ctx, root, "123456789")
	assert.ErrorIs(t, err, domain.ErrContentTooLarge)
	text, _ = s.Current().Content()
	assert.Equal(t, "ab", text, "rejected text leaves the cell unchanged")
}

func TestSession_SetContentOnContainer(t *testing.T) {
	ctx := context.Background()
	s := New(WithMaxContentSize(8), WithAssertions(true))
	root := s.Current().ID()
	require.NoError(t, s.RequestDrop(ctx, root, domain.ModuleGrid))

	for name, text := range map[string]string{
		"Valid":     "ok",
		"Oversized": "123456789",
		"Bad UTF-8": "bad\xff",
	} {
		t.Run(name, func(t *testing.T) {
			err := s.SetContent(ctx, root, text)
			assert.ErrorIs(t, err, domain.ErrInvalidState)
		})
	}
}
