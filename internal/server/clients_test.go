package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/testutil"
)

func TestClientEnqueue(t *testing.T) {
	c := NewClient(1, 2)

	assert.True(t, c.enqueue([]byte("a")))
	assert.True(t, c.enqueue([]byte("b")))
	assert.False(t, c.enqueue([]byte("c")), "full buffer")

	assert.Equal(t, []byte("a"), <-c.Send())

	c.Close()
	c.Close()
	assert.False(t, c.enqueue([]byte("d")), "closed client")

	select {
	case <-c.Done():
	default:
		t.Fatal("done should be closed")
	}
}

func TestClientManager(t *testing.T) {
	cm := NewClientManager(testutil.NopLogger())
	fast := NewClient(1, 4)
	slow := NewClient(2, 1)
	cm.Register(fast)
	cm.Register(slow)
	assert.Equal(t, 2, cm.Count())

	assert.Empty(t, cm.Broadcast([]byte("one")))
	assert.Equal(t, []uint64{2}, cm.Broadcast([]byte("two")))

	assert.True(t, cm.SendTo(1, []byte("three")))
	assert.False(t, cm.SendTo(99, []byte("nobody")))

	cm.Unregister(2)
	assert.Equal(t, 1, cm.Count())
	assert.False(t, slow.enqueue([]byte("x")), "unregistered clients are closed")

	cm.CloseAll()
	assert.Equal(t, 0, cm.Count())
	assert.False(t, fast.enqueue([]byte("x")))
}
