package container

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"storeadmin/catman/internal/client"
	"storeadmin/catman/internal/config"
	"storeadmin/catman/internal/manager"
	"storeadmin/catman/internal/prompt"
	"storeadmin/catman/internal/shell"
	"storeadmin/catman/internal/state"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config *config.Config
	Client client.CategoryClient
	Store  state.DraftStore

	redis      *redis.Client
	persistent bool // Store outlives the process
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
		Client: client.NewCategoryClient(cfg.Backend),
	}

	if !cfg.Redis.Enabled {
		container.Store = state.NewMemoryDraftStore()
		return container, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	// Test connection
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		_ = container.Client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("✅ Connected to Redis successfully")

	container.redis = rdb
	container.persistent = true
	container.Store = state.NewRedisDraftStore(rdb, cfg.Redis.KeyPrefix)

	return container, nil
}

// Manager builds a category manager that confirms deletes with confirmer.
func (c *Container) Manager(confirmer manager.Confirmer) *manager.Manager {
	return manager.NewManager(c.Client, confirmer)
}

// RunShell starts the interactive shell on in/out. The category list and any
// stashed draft are fetched concurrently before the first prompt; an unsaved
// draft is stashed again on exit when the store outlives the process.
func (c *Container) RunShell(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	m := c.Manager(prompt.NewTerminalConfirmer(reader, out))

	// Neither fetch is fatal: each records its own error, so the group never
	// cancels the other one.
	var (
		g       errgroup.Group
		stash   *state.Stash
		loadErr error
	)
	g.Go(func() error {
		loadErr = m.Load(ctx)
		return nil
	})
	g.Go(func() error {
		var err error
		stash, err = c.Store.Load(ctx)
		if err != nil {
			log.Warnf("⚠️ Could not read stashed draft: %v", err)
		}
		return nil
	})
	_ = g.Wait()

	if loadErr != nil {
		fmt.Fprintf(out, "error: %v\nType \"list\" to retry.\n", loadErr)
	}

	if stash != nil && !stash.Draft.IsZero() {
		fmt.Fprintf(out, "Restored unsaved draft from %s.\n", stash.SavedAt.Local().Format(time.DateTime))
		if !m.Restore(stash.Draft, stash.EditingID) {
			fmt.Fprintln(out, "The category it was editing no longer exists; saving will create a new one.")
		}
	}

	runErr := shell.New(m, reader, out).Run(ctx)

	// Use a fresh context so the stash survives an interrupt.
	stashCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.stashDraft(stashCtx, m, out); err != nil {
		log.Warnf("⚠️ %v", err)
	}

	return runErr
}

func (c *Container) stashDraft(ctx context.Context, m *manager.Manager, out io.Writer) error {
	draft := m.Draft()
	if draft.IsZero() {
		return c.Store.Clear(ctx)
	}
	if !c.persistent {
		log.Debug("Draft store does not outlive the process, not stashing")
		fmt.Fprintln(out, "Unsaved draft discarded. Enable redis to keep drafts between sessions.")
		return nil
	}

	stash := state.Stash{Draft: draft, SavedAt: time.Now()}
	if editing := m.Editing(); editing != nil {
		stash.EditingID = editing.ID
	}
	if err := c.Store.Save(ctx, stash); err != nil {
		return err
	}
	log.Info("💾 Stashed unsaved draft")
	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	if err := c.Client.Close(); err != nil {
		log.Warnf("⚠️ Failed to close HTTP client: %v", err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}
