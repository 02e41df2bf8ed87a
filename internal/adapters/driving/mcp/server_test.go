package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing services returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingMatchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Match:    &mockMatchService{},
			Report:   &mockReportService{},
			Document: &mockDocumentService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("reports every missing service", func(t *testing.T) {
		err := (&Ports{}).Validate()
		assert.ErrorIs(t, err, ErrMissingMatchService)
		assert.ErrorIs(t, err, ErrMissingReportService)
		assert.ErrorIs(t, err, ErrMissingDocumentService)
	})

	t.Run("report missing", func(t *testing.T) {
		err := (&Ports{Match: &mockMatchService{}, Document: &mockDocumentService{}}).Validate()
		assert.ErrorIs(t, err, ErrMissingReportService)
		assert.NotErrorIs(t, err, ErrMissingMatchService)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		err := (&Ports{
			Match:    &mockMatchService{},
			Report:   &mockReportService{},
			Document: &mockDocumentService{},
		}).Validate()
		assert.NoError(t, err)
	})
}
