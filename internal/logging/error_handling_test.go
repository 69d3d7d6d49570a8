package logging

import (
	"bytes"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeClose(t *testing.T) {
	t.Run("closes response body safely with error logging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		// Create a test server that returns a response
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("test response"))
		}))
		defer server.Close()

		// Make a request
		resp, err := http.Get(server.URL)
		require.NoError(t, err)

		// Use safe close
		SafeCloseWithLogging(resp.Body, logger, "test_operation")

		// Check that no error was logged (successful close)
		output := buf.String()
		if output != "" {
			assert.NotContains(t, output, `"level":"ERROR"`)
		}
	})

	t.Run("logs error when close fails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		// Create a closer that always returns an error
		errorCloser := &errorCloser{err: assert.AnError}

		SafeCloseWithLogging(errorCloser, logger, "test_operation")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"operation":"test_operation"`)
	})
}

func TestSafeRollback(t *testing.T) {
	t.Run("handles rollback errors gracefully", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		// Create a mock transaction that fails on rollback
		mockTx := &mockTransaction{rollbackErr: assert.AnError}

		SafeRollbackWithLogging(mockTx, logger, "test_operation")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to rollback transaction"`)
		assert.Contains(t, output, `"operation":"test_operation"`)
	})

	t.Run("ignores already committed/rolled back errors", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		// Create a mock transaction that returns the expected error
		mockTx := &mockTransaction{rollbackErr: fmt.Errorf("rollback: %w", sql.ErrTxDone)}

		SafeRollbackWithLogging(mockTx, logger, "test_operation")

		// Should not log anything for this expected error
		output := buf.String()
		assert.Empty(t, output)
	})

	t.Run("handles successful rollback silently", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		// Create a mock transaction that succeeds on rollback
		mockTx := &mockTransaction{rollbackErr: nil}

		SafeRollbackWithLogging(mockTx, logger, "test_operation")

		// Should not log anything for successful rollback
		output := buf.String()
		assert.Empty(t, output)
	})
}

// Mock types for testing
type errorCloser struct {
	err error
}

func (e *errorCloser) Close() error {
	return e.err
}

type mockTransaction struct {
	rollbackErr error
}

func (m *mockTransaction) Rollback() error {
	return m.rollbackErr
}
