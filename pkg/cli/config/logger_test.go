package config_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskscope/pkg/cli/config"
)

type credential struct {
	User     string
	Password string `masq:"secret"`
}

func TestNewLogger(t *testing.T) {
	t.Run("json format redacts secrets", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := config.NewLogger(&buf, slog.LevelInfo, "json")
		gt.NoError(t, err).Required()

		logger.Info("login",
			slog.Any("cred", credential{User: "alice", Password: "hunter2"}),
			slog.String("secret_token", "abcdef"),
		)

		out := buf.String()
		gt.String(t, out).Contains("alice")
		gt.Bool(t, bytes.Contains(buf.Bytes(), []byte("hunter2"))).False()
		gt.Bool(t, bytes.Contains(buf.Bytes(), []byte("abcdef"))).False()
	})

	t.Run("level filters lower records", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := config.NewLogger(&buf, slog.LevelWarn, "json")
		gt.NoError(t, err).Required()

		logger.Info("quiet")
		gt.Value(t, buf.Len()).Equal(0)
		logger.Warn("loud")
		gt.String(t, buf.String()).Contains("loud")
	})

	t.Run("console format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := config.NewLogger(&buf, slog.LevelInfo, "console")
		gt.NoError(t, err).Required()
		logger.Info("hello console")
		gt.String(t, buf.String()).Contains("hello console")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := config.NewLogger(&bytes.Buffer{}, slog.LevelInfo, "xml")
		gt.Error(t, err)
	})
}
