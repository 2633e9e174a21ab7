package config_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskscope/pkg/cli/config"
)

func TestReloader(t *testing.T) {
	path := writeConfig(t, validConfig)

	reloaded := make(chan *config.AppConfig, 4)
	r, err := config.NewReloader(path, func(ctx context.Context, cfg *config.AppConfig) {
		reloaded <- cfg
	}, config.WithReloadDebounce(50*time.Millisecond))
	gt.NoError(t, err).Required()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// give the watcher a moment to register
	time.Sleep(100 * time.Millisecond)

	t.Run("invalid edit is ignored", func(t *testing.T) {
		gt.NoError(t, os.WriteFile(path, []byte("[[team]]\nid = \"sre\"\n"), 0600)).Required()

		select {
		case cfg := <-reloaded:
			t.Fatalf("unexpected reload: %+v", cfg)
		case <-time.After(500 * time.Millisecond):
		}
	})

	t.Run("valid edit is delivered", func(t *testing.T) {
		gt.NoError(t, os.WriteFile(path, []byte(validConfig+"\n[[team]]\nid = \"sre\"\nname = \"SRE\"\n"), 0600)).Required()

		select {
		case cfg := <-reloaded:
			gt.Array(t, cfg.Teams).Length(2)
		case <-time.After(5 * time.Second):
			t.Fatal("reload not delivered")
		}
	})
}
