package interrupt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Fanout relays pause/resume/permission requests to whichever replica owns
// a thread's workflow execution. A gRPC handler accepting a human-in-the-loop
// response has no way to know which process is running the workflow, so it
// publishes the request on a thread-scoped channel; the replica owning that
// run subscribes to the same channel and forwards the payload into the
// engine's native signal delivery.
type Fanout struct {
	rdb *redis.Client
}

// NewFanout wraps a Redis client for interrupt pub-sub fan-out.
func NewFanout(rdb *redis.Client) *Fanout {
	return &Fanout{rdb: rdb}
}

func channelName(kind, threadID string) string {
	return fmt.Sprintf("orchestrator:interrupt:%s:%s", kind, threadID)
}

// PublishPause broadcasts a pause request for threadID.
func (f *Fanout) PublishPause(ctx context.Context, req PauseRequest) error {
	return f.publish(ctx, "pause", req.ThreadID, req)
}

// PublishResume broadcasts a resume payload for threadID.
func (f *Fanout) PublishResume(ctx context.Context, req ResumeRequest) error {
	return f.publish(ctx, "resume", req.ThreadID, req)
}

// PublishPermission broadcasts a permission decision for threadID.
func (f *Fanout) PublishPermission(ctx context.Context, grant PermissionGrant) error {
	return f.publish(ctx, "permission", grant.ThreadID, grant)
}

func (f *Fanout) publish(ctx context.Context, kind, threadID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("interrupt: marshal %s payload: %w", kind, err)
	}
	return f.rdb.Publish(ctx, channelName(kind, threadID), data).Err()
}

// SubscribePause listens for pause requests on threadID's channel until ctx
// is canceled, invoking handle for each one received. Intended to run in a
// goroutine owned by the replica hosting threadID's workflow execution.
func (f *Fanout) SubscribePause(ctx context.Context, threadID string, handle func(PauseRequest)) error {
	return subscribe(ctx, f.rdb, channelName("pause", threadID), handle)
}

// SubscribeResume listens for resume payloads on threadID's channel.
func (f *Fanout) SubscribeResume(ctx context.Context, threadID string, handle func(ResumeRequest)) error {
	return subscribe(ctx, f.rdb, channelName("resume", threadID), handle)
}

// SubscribePermission listens for permission decisions on threadID's
// channel.
func (f *Fanout) SubscribePermission(ctx context.Context, threadID string, handle func(PermissionGrant)) error {
	return subscribe(ctx, f.rdb, channelName("permission", threadID), handle)
}

func subscribe[T any](ctx context.Context, rdb *redis.Client, channel string, handle func(T)) error {
	sub := rdb.Subscribe(ctx, channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var payload T
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				continue
			}
			handle(payload)
		}
	}
}
