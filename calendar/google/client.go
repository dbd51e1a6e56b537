// Package google is the live backend: a CRUD adapter over the Google
// Calendar API, used whenever the access gate reports full access.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/caluindar/caluindar/internal"
)

type Client struct {
	oauthCfg   *oauth2.Config
	calendarID string
	token      []byte

	Verbose bool
}

var _ internal.Backend = (*Client)(nil)

// NewClient builds the adapter from the OAuth credentials JSON. The
// calendarID names which calendar owns the app's events; "primary" is
// the usual choice. tokenJSON is a previously stored token, or nil when
// the user has not granted access yet.
func NewClient(credJSON []byte, calendarID string, tokenJSON []byte) (*Client, error) {
	oauthCfg, err := googleoauth.ConfigFromJSON(credJSON, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("google: parsing credentials file: %v", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Client{
		oauthCfg:   oauthCfg,
		calendarID: calendarID,
		token:      tokenJSON,
	}, nil
}

// HasToken reports whether a stored token is available, which is what
// the access gate treats as already-granted access.
func (c *Client) HasToken() bool {
	return len(c.token) > 0
}

// SetToken installs the token obtained by Login.
func (c *Client) SetToken(tokenJSON []byte) {
	c.token = tokenJSON
}

const defaultSleep = 5 * time.Second

// Events lists events overlapping [start, end) on the configured
// calendar, converted to the domain shape.
func (c *Client) Events(ctx context.Context, start, end time.Time) ([]*internal.Event, error) {
	svc, err := c.calendarSvc(ctx)
	if err != nil {
		return nil, err
	}
	call := svc.Events.
		List(c.calendarID).
		Context(ctx).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		OrderBy("startTime")

	c.logf("checking for events in [%s, %s)", start.Format(internal.DateFormat), end.Format(internal.DateFormat))

	var (
		res           []*internal.Event
		nextPageToken string
	)
	for {
		events, err := call.PageToken(nextPageToken).Do()
		if err != nil {
			if shouldRetry(err) {
				time.Sleep(defaultSleep)
				continue
			}
			return nil, err
		}
		for _, item := range events.Items {
			res = append(res, newEvent(item))
		}
		nextPageToken = events.NextPageToken
		if nextPageToken == "" {
			break
		}
	}
	return res, nil
}

func (c *Client) CreateEvent(ctx context.Context, event *internal.Event) (*internal.Event, error) {
	svc, err := c.calendarSvc(ctx)
	if err != nil {
		return nil, err
	}

	c.logf("creating event %q on %s", event.Title, event.StartsAt)

	for {
		gevent, err := svc.Events.Insert(c.calendarID, newGoogleEvent(event)).Context(ctx).Do()
		if err == nil {
			created := event.Clone()
			created.ExternalRef = gevent.Id
			return created, nil
		}
		if shouldRetry(err) {
			time.Sleep(defaultSleep)
			continue
		}
		return nil, err
	}
}

func (c *Client) UpdateEvent(ctx context.Context, event *internal.Event) error {
	svc, err := c.calendarSvc(ctx)
	if err != nil {
		return err
	}
	if event.ExternalRef == "" {
		return internal.ErrNotFound
	}

	c.logf("updating event %s: %q on %s", event.ExternalRef, event.Title, event.StartsAt)

	for {
		_, err := svc.Events.Update(c.calendarID, event.ExternalRef, newGoogleEvent(event)).Context(ctx).Do()
		if err == nil {
			return nil
		}
		if isMissing(err) {
			return internal.ErrNotFound
		}
		if shouldRetry(err) {
			time.Sleep(defaultSleep)
			continue
		}
		return err
	}
}

func (c *Client) DeleteEvent(ctx context.Context, event *internal.Event) error {
	svc, err := c.calendarSvc(ctx)
	if err != nil {
		return err
	}
	if event.ExternalRef == "" {
		return internal.ErrNotFound
	}

	c.logf("deleting event %s", event.ExternalRef)

	for {
		err := svc.Events.Delete(c.calendarID, event.ExternalRef).Context(ctx).Do()
		if err == nil {
			return nil
		}
		if isMissing(err) || alreadyDeleted(err) {
			return internal.ErrNotFound
		}
		if shouldRetry(err) {
			time.Sleep(defaultSleep)
			continue
		}
		return err
	}
}

// Login runs the OAuth consent flow and returns the token JSON to be
// stored. This is the live adapter's access prompt; the gate calls it at
// most once per session.
func (c *Client) Login(ctx context.Context) ([]byte, error) {
	state := fmt.Sprintf("caluindar-%d", time.Now().UTC().Nanosecond())
	authURL := c.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintf(os.Stdout, "\nGo to the following link in your browser\n%s\n", authURL)

	mux := http.NewServeMux()
	server := &http.Server{
		Addr:    ":8080",
		Handler: mux,
	}

	var (
		token   *oauth2.Token
		authErr error
	)

	mux.HandleFunc("/caluindar", func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			go server.Shutdown(ctx)
		}()

		query := req.URL.Query()
		if query.Get("state") != state {
			authErr = errors.New("oauth link is not valid")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		token, authErr = c.oauthCfg.Exchange(context.TODO(), query.Get("code"))
		if authErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Unable to retrieve token:", authErr)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "All good, you can close this window!")
	})

	serverCh := make(chan struct{})
	var svrErr error
	go func() {
		svrErr = server.ListenAndServe()
		close(serverCh)
	}()

	<-serverCh

	if svrErr != nil && svrErr != http.ErrServerClosed {
		return nil, svrErr
	}

	if authErr != nil {
		return nil, authErr
	}

	return json.Marshal(token)
}

func (c *Client) calendarSvc(ctx context.Context) (*calendar.Service, error) {
	if len(c.token) == 0 {
		return nil, internal.ErrAccessDenied
	}
	var tok *oauth2.Token
	err := json.Unmarshal(c.token, &tok)
	if err != nil {
		return nil, err
	}
	httpClient := c.oauthCfg.Client(ctx, tok)
	return calendar.NewService(ctx, option.WithHTTPClient(httpClient))
}

func (c *Client) logf(format string, a ...any) {
	if c.Verbose {
		internal.Logf(os.Stdout, "google:", internal.SourceLive, format, a...)
	}
}

func shouldRetry(err error) bool {
	return errIsReason(err, "rateLimitExceeded")
}

func alreadyDeleted(err error) bool {
	return errIsReason(err, "deleted")
}

func isMissing(err error) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}
	return gErr.Code == http.StatusNotFound || gErr.Code == http.StatusGone
}

func errIsReason(err error, reason string) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}

	for _, err := range gErr.Errors {
		switch err.Reason {
		case reason:
			return true
		}
	}
	return false
}
