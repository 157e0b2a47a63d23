package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil engine returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingEngine)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Engine: engineFor(&mockDeserializeService{}, &mockMeasureService{}),
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil engine returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingEngine)
	})

	t.Run("engine only is valid", func(t *testing.T) {
		ports := &Ports{Engine: engineFor(nil, nil)}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Engine:  engineFor(nil, nil),
			History: &mockMeasureService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
