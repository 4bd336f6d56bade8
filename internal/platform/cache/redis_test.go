package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fastRetries(t *testing.T) {
	t.Helper()

	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })
}

func TestWaitForPing_Connected(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	err := waitForPing(context.Background(), client, "localhost:6379", zap.NewNop())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForPing_RetriesUntilUp(t *testing.T) {
	fastRetries(t)

	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(errors.New("connection refused"))
	mock.ExpectPing().SetErr(errors.New("connection refused"))
	mock.ExpectPing().SetVal("PONG")

	err := waitForPing(context.Background(), client, "localhost:6379", zap.NewNop())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForPing_GivesUp(t *testing.T) {
	fastRetries(t)

	client, mock := redismock.NewClientMock()
	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().SetErr(errors.New("connection refused"))
	}

	err := waitForPing(context.Background(), client, "localhost:6379", zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect redis localhost:6379")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForPing_StopsOnCancel(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitForPing(ctx, client, "localhost:6379", zap.NewNop())

	assert.ErrorIs(t, err, context.Canceled)
}
