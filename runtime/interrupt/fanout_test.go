package interrupt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelName(t *testing.T) {
	assert.Equal(t, "orchestrator:interrupt:pause:thread-1", channelName("pause", "thread-1"))
	assert.Equal(t, "orchestrator:interrupt:resume:thread-2", channelName("resume", "thread-2"))
	assert.NotEqual(t, channelName("pause", "a"), channelName("resume", "a"))
}
