package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSplitsTimestampAndFields(t *testing.T) {
	line := `7/20/2025 19:32:01.123  SPELL_DAMAGE,Player-1,"Alice",0x512,0x0,Creature-2,"Test Boss",0xa48,0x0,1000,"Fireball",4,1000`
	ts, fields, ok := Tokenize(line)
	require.True(t, ok)
	assert.Equal(t, "7/20/2025 19:32:01.123", ts)
	assert.Equal(t, "SPELL_DAMAGE", fields[0])
	assert.Equal(t, `"Alice"`, fields[2])
}

func TestTokenizeRejectsLineWithoutTwoSpaceSeparator(t *testing.T) {
	_, _, ok := Tokenize("not a valid combat log line")
	assert.False(t, ok)
}

func TestSplitFieldsHonoursQuotedCommas(t *testing.T) {
	_, fields, ok := Tokenize(`ts  EVENT,"Name, With Comma",123`)
	require.True(t, ok)
	require.Len(t, fields, 3)
	assert.Equal(t, `"Name, With Comma"`, fields[1])
	assert.Equal(t, "123", fields[2])
}

func TestSplitFieldsHonoursBracketDepth(t *testing.T) {
	_, fields, ok := Tokenize(`ts  CHALLENGE_MODE_START,"Zone",123,0,10,[9,10]`)
	require.True(t, ok)
	require.Len(t, fields, 6)
	assert.Equal(t, "[9,10]", fields[5])
}

func TestSplitFieldsHonoursParenDepth(t *testing.T) {
	_, fields, ok := Tokenize(`ts  EVENT,(1,2,3),456`)
	require.True(t, ok)
	require.Len(t, fields, 3)
	assert.Equal(t, "(1,2,3)", fields[1])
	assert.Equal(t, "456", fields[2])
}

func TestUnquoteStripsSurroundingQuotes(t *testing.T) {
	assert.Equal(t, "Alice", Unquote(`"Alice"`))
	assert.Equal(t, "123", Unquote("123"))
	assert.Equal(t, `"`, Unquote(`"`))
}

func TestTokenizeRoundTripsEmptyPayload(t *testing.T) {
	_, fields, ok := Tokenize("ts  ")
	require.True(t, ok)
	assert.Empty(t, fields)
}
