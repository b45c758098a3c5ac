package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/studymatehq/studymate/internal/jobs"
)

const jobsKey = "studymate:jobs:v1"

// ErrEmpty signals that no job was available within the poll window.
var ErrEmpty = errors.New("queue empty")

type Client struct {
	redisdb *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) *Client {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Client{redisdb: redisdb}
}

// Enqueue pushes a job onto the shared list. The API process is the
// producer; cmd/worker is the consumer.

func (c *Client) Enqueue(ctx context.Context, j jobs.Job) error {
	b, err := json.Marshal(j)

	if err != nil {
		return err
	}

	return c.redisdb.LPush(ctx, jobsKey, b).Err()
}

// Dequeue blocks up to wait for the next job. Returns ErrEmpty on timeout so
// callers can distinguish an idle queue from a broken one.

func (c *Client) Dequeue(ctx context.Context, wait time.Duration) (jobs.Job, error) {
	res, err := c.redisdb.BRPop(ctx, wait, jobsKey).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return jobs.Job{}, ErrEmpty
		}

		return jobs.Job{}, err
	}

	// BRPop returns [key, value]
	if len(res) != 2 {
		return jobs.Job{}, ErrEmpty
	}

	var j jobs.Job

	if err := json.Unmarshal([]byte(res[1]), &j); err != nil {
		return jobs.Job{}, err
	}

	return j, nil
}

// this ping function checks redis connectivity

func (c *Client) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

// this closes the client

func (c *Client) Close() error {
	return c.redisdb.Close()
}
