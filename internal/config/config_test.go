package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickfind/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigServiceAt(filepath.Join(t.TempDir(), "nope", "config.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickfind", "config.toml")
	cs := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.Client.Endpoint = "http://search.internal:9000/api/search"
	cfg.Client.TimeoutMs = 2500
	cfg.Server.DatabaseURL = "postgres://quickfind@db/quickfind"
	cfg.UI.Mouse = false
	require.NoError(t, cs.Save(cfg))

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSavedFileUsesSnakeCaseTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, NewConfigServiceAt(path).Save(DefaultConfig()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "[client]")
	assert.Contains(t, text, "debounce_ms = 300")
	assert.Contains(t, text, "[server]")
	assert.Contains(t, text, "max_delay_ms = 1100")
	assert.Contains(t, text, "[ui]")
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[client]\nendpoint = \"http://example.test/api/search\"\n"), 0644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api/search", cfg.Client.Endpoint)
	assert.Equal(t, 300*time.Millisecond, cfg.Client.Debounce())
	assert.Equal(t, 200, cfg.Server.MinDelayMs)
	assert.True(t, cfg.UI.Mouse)
}

func TestLoadRejectsBrokenFiles(t *testing.T) {
	cases := map[string]string{
		"Syntax":        "[client\nendpoint = 1",
		"MinAboveMax":   "[server]\nmin_delay_ms = 900\nmax_delay_ms = 100\n",
		"NegativeDelay": "[client]\ndebounce_ms = -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := NewConfigServiceAt(path).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadFromPathMissingIsNotExist(t *testing.T) {
	_, err := NewConfigService().LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Client.Endpoint = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Client.TimeoutMs = -5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.MinDelayMs, cfg.Server.MaxDelayMs = 500, 500
	assert.NoError(t, cfg.Validate(), "a fixed delay is allowed")
}

func TestSaveRefusesInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Server.MinDelayMs = 5000

	require.Error(t, NewConfigServiceAt(path).Save(cfg))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDefaultPathEndsInQuickfind(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("quickfind", "config.toml"), filepath.Join(filepath.Base(filepath.Dir(DefaultPath())), filepath.Base(DefaultPath())))
}

func TestBusReceivesConfigEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 2)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { got <- e })
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { got <- e })

	path := filepath.Join(t.TempDir(), "config.toml")
	cs := NewConfigServiceWithBus(path, bus)
	require.NoError(t, cs.Save(DefaultConfig()))
	_, err := cs.Load()
	require.NoError(t, err)

	for _, want := range []eventbus.EventType{eventbus.EventConfigSaved, eventbus.EventConfigLoaded} {
		select {
		case e := <-got:
			assert.Equal(t, want, e.Type())
		case <-time.After(time.Second):
			t.Fatalf("missing %s event", want)
		}
	}
}
