package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, SplitBrokers(""))
}

func TestWriteJSON(t *testing.T) {
	w := &recordingWriter{}

	err := WriteJSON(context.Background(), w, "k1", map[string]string{"to": "DEGRADED"})

	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "k1", string(w.msgs[0].Key))
	var got map[string]string
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "DEGRADED", got["to"])
	assert.False(t, w.msgs[0].Time.IsZero())
}

func TestWriteJSON_Errors(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	assert.EqualError(t, WriteJSON(context.Background(), w, "k", 1), "broker down")

	err := WriteJSON(context.Background(), w, "k", make(chan int))
	assert.ErrorContains(t, err, "marshal kafka payload")
}

func TestNewWriter(t *testing.T) {
	w := NewWriter("a:9092,b:9092", "integration_mode_changes")
	defer w.Close()

	assert.Equal(t, "integration_mode_changes", w.Topic)
	assert.Equal(t, "a:9092,b:9092", w.Addr.String())
}
