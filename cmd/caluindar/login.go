package main

import (
	"context"
	"fmt"
	"os"

	"github.com/caluindar/caluindar/internal/pipeline"
)

var LoginCommand = _loginCommand{
	Name:        "login",
	Description: "Request access to the live calendar",
}

type _loginCommand struct {
	Name        string
	Description string
}

func (c _loginCommand) Run(ctx context.Context, app *App, args []string) error {
	granted, err := app.Gate.RequestAccess(ctx)
	if err != nil {
		return fmt.Errorf("requesting access: %v", err)
	}
	if !granted {
		fmt.Fprintln(os.Stdout, "Access denied; events will be kept in the local store")
		return nil
	}
	fmt.Fprintln(os.Stdout, "Access granted!")
	return nil
}

var StatusCommand = _statusCommand{
	Name:        "status",
	Description: "Show the current access status",
}

type _statusCommand struct {
	Name        string
	Description string
}

func (c _statusCommand) Run(ctx context.Context, app *App, args []string) error {
	pl := pipeline.NewSettings(app.Gate)
	defer pl.Close()

	pl.Send(pipeline.Appear{})

	for {
		select {
		case snap := <-pl.Updates():
			if snap.Phase != pipeline.PhaseReady {
				continue
			}
			fmt.Fprintf(os.Stdout, "Calendar access: %s\n", snap.Status)
			if snap.Granted {
				fmt.Fprintln(os.Stdout, "Events are read from and written to the live calendar")
			} else {
				fmt.Fprintln(os.Stdout, "Events are kept in the local store")
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
