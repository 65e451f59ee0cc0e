package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		args []string
		ok   bool
	}{
		{"cmd debug --on", []string{"debug", "--on"}, true},
		{"cmd   fps   --show ", []string{"fps", "--show"}, true},
		{"cmd ", nil, true},
		{"cmd", nil, true},
		{"hello", nil, false},
		{"CMD debug", nil, false},
	}
	for _, c := range cases {
		args, ok := Parse(c.line)
		assert.Equal(t, c.ok, ok, c.line)
		assert.Equal(t, c.args, args, c.line)
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("debug")
	on := fs.Bool("on", false, "")
	off := fs.Bool("off", false, "")
	var got []bool
	r.Register("debug", "--on|--off", fs, func() error {
		got = append(got, *on && !*off)
		return nil
	})
	r.Register("status", "print session state", nil, func() error { return nil })

	require.NoError(t, r.Execute([]string{"debug", "--on"}))
	require.NoError(t, r.Execute([]string{"debug", "--off"}))
	assert.Equal(t, []bool{true, false}, got)

	assert.ErrorIs(t, r.Execute(nil), ErrMissing)
	assert.ErrorIs(t, r.Execute([]string{"nope"}), ErrUnknown)
	assert.ErrorContains(t, r.Execute([]string{"debug", "--bogus"}), "debug:")
	assert.NoError(t, r.Execute([]string{"status"}))

	assert.Equal(t, []string{"debug", "status"}, r.Names())
	assert.Equal(t, []string{"debug: --on|--off", "status: print session state"}, r.Help())
}

func TestRunLine(t *testing.T) {
	r := NewRegistry()
	ran := 0
	r.Register("status", "", nil, func() error { ran++; return nil })

	ok, err := r.RunLine("cmd status")
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 1, ran)

	ok, err = r.RunLine("just chatting")
	assert.False(t, ok)
	assert.NoError(t, err)

	ok, err = r.RunLine("cmd")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrMissing)
}
