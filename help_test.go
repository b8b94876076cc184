package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_topics(t *testing.T) {
	t.Parallel()

	for topic := range _helpTopics {
		t.Run(string(topic), func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder
			require.NoError(t, topic.Write(&buf))
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestHelp_none(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	require.NoError(t, NoHelp.Write(&buf))
	assert.Empty(t, buf.String())
}

func TestHelp_unknownTopic(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := Help("not-a-topic").Write(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-topic")
	assert.Contains(t, err.Error(), "profiles")
}

func TestHelp_setWithoutValue(t *testing.T) {
	t.Parallel()

	// "-h" without a value comes through as "true".
	var h Help
	require.NoError(t, h.Set("true"))
	assert.Equal(t, DefaultHelp, h)
}

func TestUsageHelp_isFirstLine(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasPrefix(_defaultHelp, _usageHelp))
	assert.Equal(t, 1, strings.Count(_usageHelp, "\n"))
}
