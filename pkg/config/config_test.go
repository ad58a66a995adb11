package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/config"
)

func TestInit_DefaultsWhenFileMissing(t *testing.T) {
	c := qt.New(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := config.Init(filepath.Join(t.TempDir(), "nope.yaml"))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.TelegramToken, qt.Equals, "123:abc")
	c.Assert(cfg.Timezone, qt.Equals, "Asia/Bangkok")
	c.Assert(cfg.Database.Driver, qt.Equals, "sqlite")
	c.Assert(cfg.SessionTTL.Std(), qt.Equals, 12*time.Hour)
	c.Assert(cfg.Messages.Responses.Start, qt.Not(qt.Equals), "")
}

func TestInit_FileOverridesDefaults(t *testing.T) {
	c := qt.New(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("timezone: UTC\nsession_ttl: 30m\nadmin_ids: [7, 9]\ndatabase:\n  driver: postgres\n  postgres_url: postgres://localhost/shop\n")
	c.Assert(os.WriteFile(path, data, 0o644), qt.IsNil)

	cfg, err := config.Init(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Timezone, qt.Equals, "UTC")
	c.Assert(cfg.SessionTTL.Std(), qt.Equals, 30*time.Minute)
	c.Assert(cfg.AdminIDs, qt.DeepEquals, []int64{7, 9})
	c.Assert(cfg.Database.Driver, qt.Equals, "postgres")
	// Untouched fields keep their defaults.
	c.Assert(cfg.MenuPath, qt.Equals, "configs/menu.yaml")

	loc, err := cfg.Location()
	c.Assert(err, qt.IsNil)
	c.Assert(loc, qt.Equals, time.UTC)
}

func TestInit_RequiresToken(t *testing.T) {
	c := qt.New(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := config.Init("")
	c.Assert(err, qt.ErrorMatches, "TELEGRAM_TOKEN environment variable not set")
}

func TestInit_BadDuration(t *testing.T) {
	c := qt.New(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	path := filepath.Join(t.TempDir(), "config.yaml")
	c.Assert(os.WriteFile(path, []byte("session_ttl: soon\n"), 0o644), qt.IsNil)

	_, err := config.Init(path)
	c.Assert(err, qt.IsNotNil)
	c.Assert(err.Error(), qt.Contains, `can't parse duration "soon"`)
}

func TestLocation_Unknown(t *testing.T) {
	c := qt.New(t)
	cfg := config.Default()
	cfg.Timezone = "Mars/Olympus"

	_, err := cfg.Location()
	c.Assert(err, qt.ErrorMatches, `can't load timezone "Mars/Olympus".*`)
}
