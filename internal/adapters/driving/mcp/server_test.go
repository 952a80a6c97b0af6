package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil catalog service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{}, "test")
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCatalogService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{}}, "test")
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})

	t.Run("reload port is optional", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Catalog: &mockCatalogService{},
			Reload:  &mockReloadService{},
		}, "test")
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_DefaultLimit(t *testing.T) {
	assert.Equal(t, 10, (&Ports{}).defaultLimit())
	assert.Equal(t, 25, (&Ports{DefaultLimit: 25}).defaultLimit())
}
