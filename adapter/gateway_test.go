package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guildline/engage-api/models"
)

// recordingSink captures dispatched events per type
type recordingSink struct {
	messages []models.MessageEvent
	voice    []models.VoiceStateEvent
	presence []models.PresenceEvent
	commands []models.CommandEvent
	boosts   []models.BoostEvent
	joins    []models.MemberJoinEvent
	leaves   []models.MemberLeaveEvent
}

func (s *recordingSink) HandleMessage(ctx context.Context, ev models.MessageEvent) {
	s.messages = append(s.messages, ev)
}

func (s *recordingSink) HandleVoiceState(ctx context.Context, ev models.VoiceStateEvent) {
	s.voice = append(s.voice, ev)
}

func (s *recordingSink) HandlePresence(ctx context.Context, ev models.PresenceEvent) {
	s.presence = append(s.presence, ev)
}

func (s *recordingSink) HandleCommand(ctx context.Context, ev models.CommandEvent) {
	s.commands = append(s.commands, ev)
}

func (s *recordingSink) HandleBoost(ctx context.Context, ev models.BoostEvent) {
	s.boosts = append(s.boosts, ev)
}

func (s *recordingSink) HandleMemberJoin(ctx context.Context, ev models.MemberJoinEvent) {
	s.joins = append(s.joins, ev)
}

func (s *recordingSink) HandleMemberLeave(ctx context.Context, ev models.MemberLeaveEvent) {
	s.leaves = append(s.leaves, ev)
}

func TestDispatchRoutesEachEventType(t *testing.T) {
	sink := &recordingSink{}
	gateway := NewGateway("ws://localhost:9999/feed", sink)
	ctx := context.Background()

	gateway.dispatch(ctx, []byte(`{"type":"message_posted","data":{"communityId":"comm-1","userId":"user-1","channelId":"chan-1","messageLength":42,"hasMedia":true}}`))
	gateway.dispatch(ctx, []byte(`{"type":"voice_state","data":{"communityId":"comm-1","userId":"user-1","channelId":"chan-2","streaming":true}}`))
	gateway.dispatch(ctx, []byte(`{"type":"presence_update","data":{"communityId":"comm-1","userId":"user-1","kind":0,"activityName":"Factorio"}}`))
	gateway.dispatch(ctx, []byte(`{"type":"command_invoked","data":{"communityId":"comm-1","userId":"user-1","command":"rank"}}`))
	gateway.dispatch(ctx, []byte(`{"type":"community_boosted","data":{"communityId":"comm-1","userId":"user-1"}}`))
	gateway.dispatch(ctx, []byte(`{"type":"member_joined","data":{"communityId":"comm-1","userId":"user-2","inviterId":"user-1","inviteToken":"tok-abc"}}`))
	gateway.dispatch(ctx, []byte(`{"type":"member_left","data":{"communityId":"comm-1","userId":"user-2"}}`))

	assert.Len(t, sink.messages, 1)
	assert.Equal(t, 42, sink.messages[0].MessageLength)
	assert.True(t, sink.messages[0].HasMedia)

	assert.Len(t, sink.voice, 1)
	assert.True(t, sink.voice[0].Streaming)
	assert.Equal(t, "chan-2", sink.voice[0].ChannelID)

	assert.Len(t, sink.presence, 1)
	assert.Equal(t, "Factorio", sink.presence[0].ActivityName)

	assert.Len(t, sink.commands, 1)
	assert.Equal(t, "rank", sink.commands[0].Command)

	assert.Len(t, sink.boosts, 1)

	assert.Len(t, sink.joins, 1)
	assert.Equal(t, "user-1", sink.joins[0].InviterID)
	assert.Equal(t, "tok-abc", sink.joins[0].InviteToken)

	assert.Len(t, sink.leaves, 1)
	assert.Equal(t, "user-2", sink.leaves[0].UserID)
}

func TestDispatchDropsUnknownEventType(t *testing.T) {
	sink := &recordingSink{}
	gateway := NewGateway("ws://localhost:9999/feed", sink)

	gateway.dispatch(context.Background(), []byte(`{"type":"reaction_added","data":{"communityId":"comm-1"}}`))

	assert.Empty(t, sink.messages)
	assert.Empty(t, sink.voice)
}

func TestDispatchDropsMalformedPayloads(t *testing.T) {
	sink := &recordingSink{}
	gateway := NewGateway("ws://localhost:9999/feed", sink)
	ctx := context.Background()

	gateway.dispatch(ctx, []byte(`not json at all`))
	gateway.dispatch(ctx, []byte(`{"type":"message_posted","data":"not an object"}`))

	assert.Empty(t, sink.messages)
}

func TestCloseIsIdempotent(t *testing.T) {
	gateway := NewGateway("ws://localhost:9999/feed", &recordingSink{})

	gateway.Close()
	gateway.Close()

	select {
	case <-gateway.closed:
	default:
		t.Fatal("expected closed channel to be shut")
	}
}
