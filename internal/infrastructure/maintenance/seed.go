package maintenance

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "demo-password"

var demoTags = []string{"go", "events", "marketplace", "learning", "community", "local"}

// SeedOptions sizes the demo data set.
type SeedOptions struct {
	Users     int
	Posts     int
	BatchSize int
	// Rand drives the generated content. Nil uses a time seeded source.
	Rand *rand.Rand
}

// SeedResult counts the inserted rows. Rows that already existed are not counted.
type SeedResult struct {
	Users int64 `json:"users"`
	Posts int64 `json:"posts"`
}

type seedUser struct {
	ID       string
	Email    string
	Username string
}

type seedPost struct {
	ID       string
	AuthorID string
	Title    string
	Body     string
	Tags     string
	Created  time.Time
}

// buildSeed generates users and posts. Post timestamps spread over the year before now.
func buildSeed(opts SeedOptions, now time.Time) ([]seedUser, []seedPost) {
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewSource(now.UnixNano()))
	}

	users := make([]seedUser, opts.Users)
	for i := range users {
		name := fmt.Sprintf("demo_user_%d", i+1)
		users[i] = seedUser{ID: uuid.NewString(), Email: name + "@example.com", Username: name}
	}
	if len(users) == 0 {
		return users, nil
	}

	yearAgo := now.Add(-365 * 24 * time.Hour)
	posts := make([]seedPost, opts.Posts)
	for i := range posts {
		author := users[r.Intn(len(users))]
		tag := demoTags[r.Intn(len(demoTags))]
		posts[i] = seedPost{
			ID:       uuid.NewString(),
			AuthorID: author.ID,
			Title:    fmt.Sprintf("Demo post %d about %s", i+1, tag),
			Body:     strings.Repeat("Lorem ipsum dolor sit amet. ", 1+r.Intn(8)),
			Tags:     "," + tag + ",",
			Created:  yearAgo.Add(time.Duration(r.Int63n(int64(now.Sub(yearAgo))))).UTC(),
		}
	}
	return users, posts
}

// Seed inserts demo users with empty profiles and posts in batches. The community
// schema must exist; run the migrate command first.
func Seed(ctx context.Context, pool *pgxpool.Pool, opts SeedOptions) (*SeedResult, error) {
	if opts.Users <= 0 && opts.Posts > 0 {
		return nil, fmt.Errorf("posts need at least one user")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	users, posts := buildSeed(opts, now)
	result := &SeedResult{}

	batch := &pgx.Batch{}
	// counts[i] receives the rows affected by the i-th queued statement, if not nil.
	var counts []*int64
	queue := func(count *int64, sql string, args ...interface{}) {
		batch.Queue(sql, args...)
		counts = append(counts, count)
	}
	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		br := pool.SendBatch(ctx, batch)
		for _, count := range counts {
			tag, err := br.Exec()
			if err != nil {
				_ = br.Close()
				return fmt.Errorf("batch exec: %w", err)
			}
			if count != nil {
				*count += tag.RowsAffected()
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("batch close: %w", err)
		}
		batch = &pgx.Batch{}
		counts = counts[:0]
		return nil
	}

	for _, u := range users {
		queue(&result.Users, `INSERT INTO users (id, email, username, password_hash, role, date_time_created, date_time_updated)
			VALUES ($1, $2, $3, $4, $5, $6, $6) ON CONFLICT DO NOTHING`,
			u.ID, u.Email, u.Username, hash, auth.RoleMember, now)
		queue(nil, `INSERT INTO profiles (user_id, display_name, bio, avatar_url, location, website, date_time_updated)
			SELECT $1::varchar, $2::varchar, '', '', '', '', $3 WHERE EXISTS (SELECT 1 FROM users WHERE id = $1::varchar)
			ON CONFLICT DO NOTHING`,
			u.ID, u.Username, now)
		if batch.Len() >= opts.BatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	for _, p := range posts {
		// Authors skipped as duplicates on a rerun get no posts.
		queue(&result.Posts, `INSERT INTO posts (id, author_id, title, body, tags, date_time_created, date_time_updated)
			SELECT $1::varchar, $2::varchar, $3, $4, $5, $6, $6 WHERE EXISTS (SELECT 1 FROM users WHERE id = $2::varchar)
			ON CONFLICT DO NOTHING`,
			p.ID, p.AuthorID, p.Title, p.Body, p.Tags, p.Created)
		if batch.Len() >= opts.BatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return result, nil
}
