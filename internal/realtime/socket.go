package realtime

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	engineiotypes "github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"

	"tourbook/internal/events"
)

// EventFinanceUpdate is the event name emitted to connected clients. The
// payload is intentionally empty; clients refetch on receipt.
const EventFinanceUpdate = "financeUpdate"

// NewServer builds the socket.io server and mounts it on the gin engine
// under /socket.io/.
func NewServer(r *gin.Engine) *socket.Server {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	c.SetPingInterval(25 * time.Second)
	c.SetPingTimeout(20 * time.Second)
	c.SetMaxHttpBufferSize(1_000_000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetCors(&engineiotypes.Cors{
		Origin:      "*",
		Credentials: true,
	})

	wss := socket.NewServer(nil, nil)
	wss.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		log.Printf("[SOCKET] action=connect client=%s", string(client.Id()))
		client.On("disconnect", func(...any) {
			log.Printf("[SOCKET] action=disconnect client=%s", string(client.Id()))
		})
	})

	r.GET("/socket.io/*any", gin.WrapH(wss.ServeHandler(c)))
	r.POST("/socket.io/*any", gin.WrapH(wss.ServeHandler(c)))
	return wss
}

// Bridge forwards finance updates from the bus to every connected client
// until ctx is cancelled.
func Bridge(ctx context.Context, bus *events.Bus, wss *socket.Server) error {
	msgs, err := bus.SubscribeFinanceUpdates(ctx)
	if err != nil {
		return err
	}
	go func() {
		for msg := range msgs {
			wss.Emit(EventFinanceUpdate)
			msg.Ack()
		}
	}()
	return nil
}
