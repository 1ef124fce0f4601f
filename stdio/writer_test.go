package stdio

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	buffer := &bytes.Buffer{}
	writer := NewWriter(buffer)
	require.NoError(t, writer.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`)))
	require.NoError(t, writer.Write([]byte("{\n  \"jsonrpc\": \"2.0\",\n  \"id\": 2,\n  \"result\": {\"text\": \"a b\"}\n}")))
	assert.Equal(t, "{\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{}}\n{\"jsonrpc\":\"2.0\",\"id\":2,\"result\":{\"text\":\"a b\"}}\n", buffer.String())

	assert.Error(t, writer.Write([]byte(`{"broken"`)))
}

func TestWriter_Flushes(t *testing.T) {
	pipeReader, pipeWriter := io.Pipe()
	writer := NewWriter(pipeWriter)
	go func() {
		_ = writer.Write([]byte(`{"id":1}`))
	}()
	line, err := bufio.NewReader(pipeReader).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1}\n", line)
}

func TestWriter_Closed(t *testing.T) {
	pipeReader, pipeWriter := io.Pipe()
	require.NoError(t, pipeReader.Close())
	writer := NewWriter(pipeWriter)
	err := writer.Write([]byte(`{"id":1}`))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWriter_Concurrent(t *testing.T) {
	buffer := &bytes.Buffer{}
	writer := NewWriter(buffer)
	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = writer.Write([]byte(`{"jsonrpc":"2.0","method":"notifications/progress"}`))
		}()
	}
	wg.Wait()
	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Equal(t, `{"jsonrpc":"2.0","method":"notifications/progress"}`, line)
	}
}
