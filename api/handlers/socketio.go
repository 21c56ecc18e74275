package handlers

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"

	"github.com/guildline/engage-api/models"
)

var server *socketio.Server

// InitializeSocketIO initializes the Socket.IO server. Collaborators such as
// the announcement renderer and the role-assignment service join their
// community's room to receive reward events.
func InitializeSocketIO() *socketio.Server {
	server = socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			polling.Default,
			websocket.Default,
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		log.Println("Socket.IO client connected:", s.ID())
		return nil
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.Println("Socket.IO error:", e)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Println("Socket.IO client disconnected:", s.ID(), "reason:", reason)
	})

	server.OnEvent("/", "join_community", func(s socketio.Conn, msg map[string]interface{}) {
		communityId, ok := msg["communityId"].(string)
		if ok {
			s.Join(communityId)
			log.Println("Client joined community:", communityId)
		}
	})

	server.OnEvent("/", "leave_community", func(s socketio.Conn, msg map[string]interface{}) {
		communityId, ok := msg["communityId"].(string)
		if ok {
			s.Leave(communityId)
			log.Println("Client left community:", communityId)
		}
	})

	go func() {
		if err := server.Serve(); err != nil {
			log.Fatalf("Socket.IO server error: %v", err)
		}
	}()

	return server
}

// GetSocketIOServer returns the Socket.IO server instance
func GetSocketIOServer() *socketio.Server {
	return server
}

// SocketNotifier broadcasts engine reward events to community rooms. A nil
// or uninitialized server makes every emit a no-op, so the engine never
// blocks on a missing collaborator.
type SocketNotifier struct{}

// LevelUp emits a level_up event to all clients in the community
func (SocketNotifier) LevelUp(event models.LevelUpEvent) {
	if server != nil {
		server.BroadcastToRoom("/", event.CommunityID, "level_up", event)
	}
}

// MilestoneReached emits a milestone_reached event to all clients in the community
func (SocketNotifier) MilestoneReached(event models.MilestoneReachedEvent) {
	if server != nil {
		server.BroadcastToRoom("/", event.CommunityID, "milestone_reached", event)
	}
}

// StreakReward emits a streak_reward event to all clients in the community
func (SocketNotifier) StreakReward(event models.StreakRewardEvent) {
	if server != nil {
		server.BroadcastToRoom("/", event.CommunityID, "streak_reward", event)
	}
}

// InviteMilestone emits an invite_milestone event to all clients in the community
func (SocketNotifier) InviteMilestone(event models.InviteMilestoneEvent) {
	if server != nil {
		server.BroadcastToRoom("/", event.CommunityID, "invite_milestone", event)
	}
}
