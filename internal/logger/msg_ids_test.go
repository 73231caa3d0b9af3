package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMsgIDRoundTrip(t *testing.T) {
	for id := MsgID_None; id < MsgID_END; id++ {
		tag := MsgIDToString(id)
		if tag == "" {
			continue
		}

		overrides := make(map[MsgID]LogLevel)
		StringToMsgIDs(tag, LevelError, overrides)
		if !assert.NotEmpty(t, overrides, "tag %q round-tripped to no message id", tag) {
			continue
		}
		for k, v := range overrides {
			assert.Equal(t, tag, MsgIDToString(k))
			assert.Equal(t, LevelError, v)
		}
	}
}

func TestStringToMsgIDsIgnoresUnknownTag(t *testing.T) {
	overrides := make(map[MsgID]LogLevel)
	StringToMsgIDs("not-a-real-deprecation", LevelSilent, overrides)
	assert.Empty(t, overrides)
}
