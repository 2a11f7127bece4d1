// Package mongo implements checkpoint.Store durably on MongoDB: an
// append-only version history per thread plus a "latest" index, giving a
// typed snapshot KV store keyed by (thread_id, version) with a
// latest(thread_id) view.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/adamsih300u/orchestrator/runtime/checkpoint"
)

const (
	defaultCollection = "orchestrator_checkpoints"
	defaultOpTimeout  = 5 * time.Second
)

// Options configures the Mongo-backed checkpoint store.
type Options struct {
	Client     *mongodriver.Client
	Database   string
	Collection string
	Timeout    time.Duration
}

// Store implements checkpoint.Store on top of a MongoDB collection. Each
// checkpoint version is its own document; Latest queries the highest Version
// for a thread, and Branch looks a specific checkpoint ID up directly.
type Store struct {
	coll    *mongodriver.Collection
	timeout time.Duration
}

// New builds a Store using the provided client and ensures the indexes that
// back Latest/Branch lookups exist.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Client == nil {
		return nil, errors.New("mongo client is required")
	}
	if opts.Database == "" {
		return nil, errors.New("database name is required")
	}
	collName := opts.Collection
	if collName == "" {
		collName = defaultCollection
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	coll := opts.Client.Database(opts.Database).Collection(collName)

	ictx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := ensureIndexes(ictx, coll); err != nil {
		return nil, err
	}
	return &Store{coll: coll, timeout: timeout}, nil
}

func ensureIndexes(ctx context.Context, coll *mongodriver.Collection) error {
	models := []mongodriver.IndexModel{
		{Keys: bson.D{{Key: "thread_id", Value: 1}, {Key: "version", Value: -1}}},
		{Keys: bson.D{{Key: "checkpoint_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

type checkpointDocument struct {
	CheckpointID string         `bson:"checkpoint_id"`
	ThreadID     string         `bson:"thread_id"`
	Values       map[string]any `bson:"values"`
	Next         []string       `bson:"next"`
	Version      int            `bson:"version"`
	CreatedAt    time.Time      `bson:"created_at"`
}

func toDoc(cp checkpoint.Checkpoint) checkpointDocument {
	return checkpointDocument{
		CheckpointID: cp.ID,
		ThreadID:     cp.ThreadID,
		Values:       cp.Values,
		Next:         cp.Next,
		Version:      cp.Version,
		CreatedAt:    cp.CreatedAt,
	}
}

func (d checkpointDocument) toCheckpoint() checkpoint.Checkpoint {
	return checkpoint.Checkpoint{
		ID:        d.CheckpointID,
		ThreadID:  d.ThreadID,
		Values:    d.Values,
		Next:      d.Next,
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
	}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Latest implements checkpoint.Store.
func (s *Store) Latest(ctx context.Context, threadID string) (checkpoint.Checkpoint, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})
	var doc checkpointDocument
	err := s.coll.FindOne(ctx, bson.M{"thread_id": threadID}, opts).Decode(&doc)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return checkpoint.Checkpoint{}, checkpoint.ErrNotFound
	}
	if err != nil {
		return checkpoint.Checkpoint{}, err
	}
	return doc.toCheckpoint(), nil
}

// Put implements checkpoint.Store.
func (s *Store) Put(ctx context.Context, threadID string, values map[string]any, next []string) (checkpoint.Checkpoint, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	prev, err := s.Latest(ctx, threadID)
	version := 1
	if err == nil {
		version = prev.Version + 1
	} else if !errors.Is(err, checkpoint.ErrNotFound) {
		return checkpoint.Checkpoint{}, err
	}

	cp := checkpoint.Checkpoint{
		ID:        newCheckpointID(threadID, version),
		ThreadID:  threadID,
		Values:    values,
		Next:      next,
		Version:   version,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, toDoc(cp)); err != nil {
		return checkpoint.Checkpoint{}, err
	}
	return cp, nil
}

// UpdateState implements checkpoint.Store.
func (s *Store) UpdateState(ctx context.Context, threadID string, partial map[string]any) (checkpoint.Checkpoint, error) {
	prev, err := s.Latest(ctx, threadID)
	if err != nil && !errors.Is(err, checkpoint.ErrNotFound) {
		return checkpoint.Checkpoint{}, err
	}
	merged := checkpoint.MergeValues(prev.Values, partial)
	return s.Put(ctx, threadID, merged, prev.Next)
}

// Branch implements checkpoint.Store.
func (s *Store) Branch(ctx context.Context, threadID string, checkpointID string) (checkpoint.Checkpoint, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var doc checkpointDocument
	err := s.coll.FindOne(ctx, bson.M{"thread_id": threadID, "checkpoint_id": checkpointID}).Decode(&doc)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return checkpoint.Checkpoint{}, checkpoint.ErrCheckpointNotFound
	}
	if err != nil {
		return checkpoint.Checkpoint{}, err
	}
	return doc.toCheckpoint(), nil
}

func newCheckpointID(threadID string, version int) string {
	return threadID + "#" + itoa(version)
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
