package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvFrame(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case raw := <-c.Send:
		return raw
	default:
		t.Fatal("expected a frame, got none")
		return nil
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("unexpected frame: %s", raw)
	default:
	}
}

func TestRegisterLastConnectionWins(t *testing.T) {
	m := NewManager()

	first := NewClient("user-1", nil)
	second := NewClient("user-1", nil)

	m.Register(first)
	m.Register(second)

	require.True(t, m.IsOnline("user-1"))

	ok := m.SendToUser("user-1", []byte("hello"))
	require.True(t, ok)

	assert.Equal(t, []byte("hello"), recvFrame(t, second))
	assertNoFrame(t, first)
}

func TestUnregisterOnlyRemovesMatchingHandle(t *testing.T) {
	m := NewManager()

	first := NewClient("user-1", nil)
	second := NewClient("user-1", nil)

	m.Register(first)
	m.Register(second)

	// The stale connection disconnecting must not clobber the newer one.
	m.Unregister(first)
	require.True(t, m.IsOnline("user-1"))

	ok := m.SendToUser("user-1", []byte("still here"))
	require.True(t, ok)
	assert.Equal(t, []byte("still here"), recvFrame(t, second))

	m.Unregister(second)
	assert.False(t, m.IsOnline("user-1"))
}

func TestSendToUserOffline(t *testing.T) {
	m := NewManager()
	assert.False(t, m.SendToUser("nobody", []byte("dropped")))
}

func TestRoomBroadcastScoping(t *testing.T) {
	m := NewManager()

	inRoom := NewClient("user-1", nil)
	outOfRoom := NewClient("user-2", nil)
	m.Register(inRoom)
	m.Register(outOfRoom)

	m.JoinRoom(inRoom, "chat-1")

	m.BroadcastToRoom("chat-1", []byte("scoped"))
	assert.Equal(t, []byte("scoped"), recvFrame(t, inRoom))
	assertNoFrame(t, outOfRoom)

	m.LeaveRoom(inRoom, "chat-1")
	m.BroadcastToRoom("chat-1", []byte("after leave"))
	assertNoFrame(t, inRoom)
}

func TestReplacedConnectionKeepsRoomDelivery(t *testing.T) {
	m := NewManager()

	first := NewClient("user-1", nil)
	m.Register(first)
	m.JoinRoom(first, "chat-1")

	second := NewClient("user-1", nil)
	m.Register(second)

	// Rooms are keyed by connection, so the replaced connection still gets
	// room broadcasts even though it lost the presence slot.
	m.BroadcastToRoom("chat-1", []byte("room"))
	assert.Equal(t, []byte("room"), recvFrame(t, first))
	assertNoFrame(t, second)
}

func TestUserInRoomTracksRegisteredConnection(t *testing.T) {
	m := NewManager()

	first := NewClient("user-1", nil)
	m.Register(first)
	m.JoinRoom(first, "chat-1")
	require.True(t, m.UserInRoom("user-1", "chat-1"))

	// A newer connection that has not joined the room takes over presence.
	second := NewClient("user-1", nil)
	m.Register(second)
	assert.False(t, m.UserInRoom("user-1", "chat-1"))

	m.JoinRoom(second, "chat-1")
	assert.True(t, m.UserInRoom("user-1", "chat-1"))
}

func TestUnregisterRemovesFromRooms(t *testing.T) {
	m := NewManager()

	client := NewClient("user-1", nil)
	m.Register(client)
	m.JoinRoom(client, "chat-1")
	m.JoinRoom(client, "chat-2")

	m.Unregister(client)

	m.BroadcastToRoom("chat-1", []byte("gone"))
	m.BroadcastToRoom("chat-2", []byte("gone"))
	assertNoFrame(t, client)

	select {
	case <-client.Done():
	default:
		t.Fatal("expected client to be marked closed")
	}
}
