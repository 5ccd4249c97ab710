package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected Frame
	}{
		{"empty", "", Frame{}},
		{"letters", "aadl", Frame{Left: 2, Right: 2}},
		{"vim keys", "hhl", Frame{Left: 2, Right: 1}},
		{"arrows", "\x1b[D\x1b[C\x1b[C", Frame{Left: 1, Right: 2}},
		{"application arrows", "\x1bOD", Frame{Left: 1}},
		{"up arrow ignored", "\x1b[A", Frame{}},
		{"space fires and confirms", "  ", Frame{Fire: 2, Confirm: 2}},
		{"enter confirms only", "\r\n", Frame{Confirm: 2}},
		{"quit", "aq", Frame{Left: 1, Quit: true}},
		{"ctrl-c", "\x03", Frame{Quit: true}},
		{"lone escape", "\x1b", Frame{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.in))
			assert.Equal(t, tt.expected.Left, got.Left)
			assert.Equal(t, tt.expected.Right, got.Right)
			assert.Equal(t, tt.expected.Fire, got.Fire)
			assert.Equal(t, tt.expected.Confirm, got.Confirm)
			assert.Equal(t, tt.expected.Quit, got.Quit)
			assert.Equal(t, len(tt.in), len(got.Pressed))
		})
	}
}

func TestReadFrameReportsQuitAfterEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d ")))

	var total Frame
	require.Eventually(t, func() bool {
		f := ReadFrame(s)
		total.Right += f.Right
		total.Fire += f.Fire
		return f.Quit
	}, time.Second, time.Millisecond)

	assert.Equal(t, 1, total.Right)
	assert.Equal(t, 1, total.Fire)
	assert.True(t, ReadFrame(s).Quit)
}

func TestFrameAny(t *testing.T) {
	assert.False(t, Frame{}.Any())
	assert.True(t, Frame{Pressed: []byte{'x'}}.Any())
	assert.True(t, Frame{Quit: true}.Any())
}
