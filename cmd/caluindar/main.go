package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	var (
		configPath string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "path to config file (default: user config dir)")
	flag.BoolVar(&verbose, "verbose", false, "enable verbose output")
	flag.Usage = usage
	flag.Parse()

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		cancel()
	}()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	app, err := newApp(configPath, verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Unable to start:", err)
		os.Exit(1)
	}
	defer app.Close()

	switch cmd := args[0]; cmd {
	case LoginCommand.Name:
		err = LoginCommand.Run(ctx, app, args[1:])
	case StatusCommand.Name:
		err = StatusCommand.Run(ctx, app, args[1:])
	case MonthCommand.Name:
		err = MonthCommand.Run(ctx, app, args[1:])
	case DayCommand.Name:
		err = DayCommand.Run(ctx, app, args[1:])
	case AddCommand.Name:
		err = AddCommand.Run(ctx, app, args[1:])
	case EditCommand.Name:
		err = EditCommand.Run(ctx, app, args[1:])
	case RemoveCommand.Name:
		err = RemoveCommand.Run(ctx, app, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "Usage: %s [options] <command> [command options]\n", os.Args[0])
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range [][2]string{
		{LoginCommand.Name, LoginCommand.Description},
		{StatusCommand.Name, StatusCommand.Description},
		{MonthCommand.Name, MonthCommand.Description},
		{DayCommand.Name, DayCommand.Description},
		{AddCommand.Name, AddCommand.Description},
		{EditCommand.Name, EditCommand.Description},
		{RemoveCommand.Name, RemoveCommand.Description},
	} {
		fmt.Fprintf(w, "  %-8s %s\n", c[0], c[1])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flag.PrintDefaults()
}
