package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"quickfind/internal/client"
	"quickfind/internal/config"
	"quickfind/internal/eventbus"
	"quickfind/internal/ui"
	"quickfind/internal/ui/services/query"
	"quickfind/internal/urlstate"
)

// WidgetOptions are the per-run overrides of the widget
type WidgetOptions struct {
	Query string // seeds the input, wins over the link's q
	Link  string // shareable link to start from; defaults to client.share_base
}

// Seed resolves the initial query and link location
func Seed(cfg *config.Config, opts WidgetOptions) (string, *urlstate.Location, error) {
	raw := opts.Link
	if raw == "" {
		raw = cfg.Client.ShareBase
	}

	var loc *urlstate.Location
	if raw != "" {
		var err error
		loc, err = urlstate.Parse(raw)
		if err != nil {
			return "", nil, err
		}
	}

	seed := opts.Query
	if seed == "" && loc != nil {
		seed = loc.Query()
	}
	return seed, loc, nil
}

// NewQueryService builds the query controller backed by the HTTP client
func NewQueryService(ctx context.Context, cfg *config.Config, loc *urlstate.Location, bus eventbus.EventBus) (*query.Service, error) {
	cl, err := client.New(cfg.Client.Endpoint, client.WithTimeout(cfg.Client.Timeout()))
	if err != nil {
		return nil, err
	}
	return query.NewService(cl, query.Options{
		Debounce: cfg.Client.Debounce(),
		Location: loc,
		Bus:      bus,
		Context:  ctx,
	}), nil
}

// RunWidget runs the terminal widget until the user quits, then prints the
// shareable link to out
func RunWidget(ctx context.Context, cfg *config.Config, bus eventbus.EventBus, opts WidgetOptions, out io.Writer) error {
	seed, loc, err := Seed(cfg, opts)
	if err != nil {
		return err
	}

	svc, err := NewQueryService(ctx, cfg, loc, bus)
	if err != nil {
		return err
	}
	defer svc.Stop()

	model := ui.NewModel(svc, ui.Options{Seed: seed, Pager: ui.NewOvPager()})

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	log.Printf("Starting UI against %s", cfg.Client.Endpoint)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")

	if link := model.Link(); link != "" {
		fmt.Fprintln(out, link)
	}
	return nil
}

// LogEvents writes every lifecycle event to the std logger
func LogEvents(bus eventbus.EventBus) {
	for _, et := range []eventbus.EventType{
		eventbus.EventSearchIssued,
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventSearchDiscarded,
		eventbus.EventQueryReset,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(et, func(e eventbus.DomainEvent) {
			log.Printf("event %s: %+v", e.Type(), e)
		})
	}
}
