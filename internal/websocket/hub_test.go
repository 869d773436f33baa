package websocket

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify(t *testing.T) {
	t.Run("nil hub is a no-op", func(t *testing.T) {
		var hub *Hub
		hub.Notify("item.created", map[string]interface{}{"id": "x"})
	})

	t.Run("queues events while the dispatcher is busy", func(t *testing.T) {
		hub := NewHub()

		hub.Notify("borrow.approved", map[string]interface{}{"id": "a"})
		hub.Notify("borrow.returned", map[string]interface{}{"id": "b"})
		require.Equal(t, 2, len(hub.Broadcast))

		var ev Event
		require.NoError(t, json.Unmarshal(<-hub.Broadcast, &ev))
		assert.Equal(t, "borrow.approved", ev.Event)
		assert.Equal(t, "a", ev.Data["id"])
	})

	t.Run("drops past the buffer instead of blocking", func(t *testing.T) {
		hub := NewHub()
		for i := 0; i < broadcastBuffer+10; i++ {
			hub.Notify("item.created", map[string]interface{}{"seq": fmt.Sprint(i)})
		}
		assert.Equal(t, broadcastBuffer, len(hub.Broadcast))
	})
}
