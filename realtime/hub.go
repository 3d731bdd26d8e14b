package realtime

import (
	"log"

	sio "github.com/googollee/go-socket.io"

	"github.com/akavinashsingh/safeRoute-AI/models"
)

// Rooms. Every connection joins global; dashboards opt into admin.
const (
	RoomGlobal = "global"
	RoomAdmin  = "admin"
)

var Server *sio.Server

// Init builds the Socket.IO server and wires room membership. The caller
// mounts it on the router and runs Serve in a goroutine.
func Init() *sio.Server {
	Server = sio.NewServer(nil)

	Server.OnConnect("/", func(s sio.Conn) error {
		s.SetContext("")
		s.Join(RoomGlobal)
		log.Printf("Socket connected: %s", s.ID())
		return nil
	})

	Server.OnEvent("/", "join_admin", func(s sio.Conn) {
		s.Join(RoomAdmin)
		log.Printf("Socket %s joined admin room", s.ID())
	})

	Server.OnEvent("/", "leave_admin", func(s sio.Conn) {
		s.Leave(RoomAdmin)
	})

	Server.OnError("/", func(s sio.Conn, e error) {
		log.Printf("Socket error: %v", e)
	})

	Server.OnDisconnect("/", func(s sio.Conn, reason string) {
		log.Printf("Socket disconnected: %s (%s)", s.ID(), reason)
	})

	return Server
}

// EmitFeedback pushes a new community report to everyone, plus a copy on
// the admin-only event.
func EmitFeedback(fb models.FeedbackReport) {
	if Server == nil {
		return
	}
	Server.BroadcastToRoom("/", RoomGlobal, "new_feedback", fb)
	Server.BroadcastToRoom("/", RoomAdmin, "new_community_feedback", fb)
}

// EmitDataCleared tells every client to drop feedback state and overlays.
func EmitDataCleared(feedbackDeleted, alertsDeleted int64) {
	if Server == nil {
		return
	}
	Server.BroadcastToRoom("/", RoomGlobal, "data_cleared", map[string]int64{
		"feedback_deleted": feedbackDeleted,
		"sos_deleted":      alertsDeleted,
	})
}

func EmitNewAlert(alert models.Alert) {
	if Server == nil {
		return
	}
	Server.BroadcastToRoom("/", RoomAdmin, "new_sos_alert", alert)
}

func EmitAlertUpdated(alert models.Alert) {
	if Server == nil {
		return
	}
	Server.BroadcastToRoom("/", RoomAdmin, "alert_updated", alert)
}
