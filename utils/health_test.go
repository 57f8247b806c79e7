package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth_Redis(t *testing.T) {
	client, m := redismock.NewClientMock()
	m.ExpectPing().SetVal("PONG")

	status := CheckHealth(context.Background(), client, nil)
	require.NotNil(t, status.Redis)
	assert.True(t, *status.Redis)
	assert.Nil(t, status.Mongo)
	assert.Equal(t, status, GetHealthStatus())

	m.ExpectPing().SetErr(errors.New("connection refused"))
	status = CheckHealth(context.Background(), client, nil)
	assert.False(t, *status.Redis)
	assert.NoError(t, m.ExpectationsWereMet())
}

func TestCheckHealth_NothingConfigured(t *testing.T) {
	status := CheckHealth(context.Background(), nil, nil)
	assert.Nil(t, status.Redis)
	assert.Nil(t, status.Mongo)
	assert.False(t, status.CheckedAt.IsZero())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "warn", parseLevel("warn", 0).String())
	assert.Equal(t, "info", parseLevel("", 0).String())
	assert.Equal(t, "debug", parseLevel("loud", -1).String())
}
