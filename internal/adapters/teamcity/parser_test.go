package teamcity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLine_Message(t *testing.T) {
	msg, ok := ParseLine("##teamcity[testStarted name='MyTest.works']")
	require.True(t, ok)
	require.Equal(t, "testStarted", msg.Name)
	require.Equal(t, "MyTest.works", msg.Attrs["name"])
}

func TestParseLine_MultipleAttributes(t *testing.T) {
	msg, ok := ParseLine("##teamcity[testFinished name='t' duration='42']")
	require.True(t, ok)
	require.Equal(t, map[string]string{"name": "t", "duration": "42"}, msg.Attrs)
}

func TestParseLine_Escapes(t *testing.T) {
	msg, ok := ParseLine("##teamcity[testFailed name='t' message='a|'b|nc|rd||e|[f|]g']")
	require.True(t, ok)
	require.Equal(t, "a'b\nc\rd|e[f]g", msg.Attrs["message"])
}

func TestParseLine_LeadingWhitespace(t *testing.T) {
	_, ok := ParseLine("  ##teamcity[testStarted name='t']")
	require.True(t, ok)
}

func TestParseLine_PlainOutput(t *testing.T) {
	for _, line := range []string{
		"hello world",
		"",
		"##teamcity not a message",
		"[testStarted name='t']",
	} {
		_, ok := ParseLine(line)
		require.False(t, ok, "line %q", line)
	}
}

func TestParseLine_Malformed(t *testing.T) {
	for _, line := range []string{
		"##teamcity[]",
		"##teamcity[testStarted name=t]",
		"##teamcity[testStarted name='unterminated]",
		"##teamcity[testStarted name='bad|escape']",
		"##teamcity[testStarted ='t']",
	} {
		_, ok := ParseLine(line)
		require.False(t, ok, "line %q", line)
	}
}

func TestParseLine_NoAttributes(t *testing.T) {
	msg, ok := ParseLine("##teamcity[enteredTheMatrix]")
	require.True(t, ok)
	require.Equal(t, "enteredTheMatrix", msg.Name)
	require.Empty(t, msg.Attrs)
}
