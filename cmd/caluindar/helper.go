package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	_ "github.com/mattn/go-sqlite3"

	"github.com/caluindar/caluindar/calendar/google"
	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/access"
	"github.com/caluindar/caluindar/internal/config"
	"github.com/caluindar/caluindar/internal/projection"
	"github.com/caluindar/caluindar/internal/repository"
	"github.com/caluindar/caluindar/internal/service"
	"github.com/caluindar/caluindar/internal/sqlite"
)

type App struct {
	Config  *config.Config
	Gate    *access.Gate
	Service *service.Service
	Verbose bool

	db *sql.DB
}

func newApp(configPath string, verbose bool) (*App, error) {
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %v", err)
	}

	db, err := sql.Open(sqlite.DriverName, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	local := sqlite.NewStorage(db)

	var (
		live       internal.Backend = local
		authorizer access.Authorizer
		initial    = access.StatusUndetermined
	)

	credJSON, err := os.ReadFile(cfg.CredentialsFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No live calendar configured; everything stays local.
		initial = access.StatusDenied
		authorizer = access.AuthorizerFunc(func(context.Context) (bool, error) {
			return false, nil
		})
	case err != nil:
		db.Close()
		return nil, err
	default:
		tokenJSON, _ := os.ReadFile(cfg.TokenFile)
		gcal, err := google.NewClient(credJSON, cfg.CalendarID, tokenJSON)
		if err != nil {
			db.Close()
			return nil, err
		}
		gcal.Verbose = verbose
		live = gcal
		if gcal.HasToken() {
			initial = access.StatusGranted
		}
		authorizer = access.AuthorizerFunc(func(ctx context.Context) (bool, error) {
			tokenJSON, err := gcal.Login(ctx)
			if err != nil {
				return false, err
			}
			if err := os.WriteFile(cfg.TokenFile, tokenJSON, 0o600); err != nil {
				return false, err
			}
			gcal.SetToken(tokenJSON)
			return true, nil
		})
	}

	gate := access.NewGate(authorizer, initial)
	repo := repository.New(os.Stderr, gate, live, local)

	return &App{
		Config:  cfg,
		Gate:    gate,
		Service: service.New(repo),
		Verbose: verbose,
		db:      db,
	}, nil
}

func (a *App) Close() {
	a.db.Close()
}

// findEvent looks an event up by ID inside the wide window around the
// given pivot day.
func (a *App) findEvent(ctx context.Context, id string, pivot time.Time) (*internal.Event, error) {
	window := projection.WindowAround(pivot)
	events, err := a.Service.Fetch(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return nil, fmt.Errorf("%w: no event %q in %s", internal.ErrNotFound, id, window)
}

// dateFlag parses "2006-01-02" command line values.
type dateFlag struct {
	time.Time
}

func (d *dateFlag) String() string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Format(internal.DateFormat)
}

func (d *dateFlag) Set(v string) error {
	parsed, err := time.ParseInLocation(internal.DateFormat, v, time.Local)
	if err == nil {
		d.Time = parsed
	}
	return err
}

// timeFlag accepts either a timestamp or a bare date.
type timeFlag struct {
	time.Time
}

const timeFlagFormat = "2006-01-02 15:04"

func (t *timeFlag) String() string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(timeFlagFormat)
}

func (t *timeFlag) Set(v string) error {
	parsed, err := time.ParseInLocation(timeFlagFormat, v, time.Local)
	if err != nil {
		parsed, err = time.ParseInLocation(internal.DateFormat, v, time.Local)
	}
	if err == nil {
		t.Time = parsed
	}
	return err
}

// colorize paints s on the event's color tag, choosing a readable
// foreground by luminance. Unknown or missing colors pass through.
func colorize(c internal.Color, s string) string {
	if c.IsZero() {
		return s
	}
	col, err := colorful.Hex(string(c))
	if err != nil {
		return s
	}
	r, g, b := col.RGB255()
	painter := color.BgRGB(int(r), int(g), int(b))
	if _, _, l := col.Hsl(); l > 0.5 {
		painter = painter.AddRGB(0, 0, 0)
	} else {
		painter = painter.AddRGB(255, 255, 255)
	}
	return painter.Sprint(s)
}

func dim(s string) string {
	return color.New(color.Faint).Sprint(s)
}

func formatTime(t time.Time) string {
	return t.In(time.Local).Format("15:04")
}
