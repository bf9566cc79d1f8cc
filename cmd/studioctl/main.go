// Command studioctl runs studio API calls from the terminal on top of a
// restored or freshly opened session.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/eshaffer321/studio-go/internal/config"
	"github.com/eshaffer321/studio-go/internal/logger"
	"github.com/eshaffer321/studio-go/pkg/studio"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const usage = `usage: studioctl [flags] <command> [args]

commands:
  whoami                 show the restored session
  guard <role|any>       evaluate the access guard for a view
  schedules [YYYY-MM-DD] list class slots
  bookings [--all]       list your bookings, or every booking as admin
  trainers               list trainers
  book <schedule-id>     book a class slot
  cancel <booking-id>    cancel a booking
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	phone := flag.String("phone", os.Getenv("STUDIO_PHONE"), "Phone number to sign in with")
	pin := flag.String("pin", os.Getenv("STUDIO_PIN"), "PIN to sign in with")
	baseURL := flag.String("api", cfg.API.BaseURL, "Studio API base URL")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := cfg.Logging.Level
	if *verbose {
		level = "debug"
	}
	logger.Init(level, cfg.Logging.Format)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	client, err := studio.NewClient(&studio.ClientOptions{
		BaseURL:     *baseURL,
		LoginPath:   cfg.API.LoginPath,
		DefaultPath: cfg.API.DefaultPath,
		RetryConfig: cfg.RetryConfig(),
		Logger:      logger.NewAdapter(logger.GetLogger()),
		SentryDSN:   cfg.SentryDSN,
		Navigator: studio.NavigatorFunc(func(path string) {
			log.Warn().Str("path", path).Msg("session ended, sign in again")
		}),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize studio client")
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *phone != "" {
		if _, err := client.Auth.Login(ctx, *phone, *pin); err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
	} else {
		client.Auth.Bootstrap(ctx)
	}

	if err := run(ctx, client, flag.Args(), os.Stdout); err != nil {
		log.Error().Err(err).Str("kind", studio.Classify(err).String()).Msg("command failed")
		os.Exit(1)
	}
}

// run executes one command against an already bootstrapped client
func run(ctx context.Context, client *studio.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("no command given")
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "whoami":
		s := client.Session()
		if !s.IsAuthenticated() {
			fmt.Fprintln(out, "not signed in")
			return nil
		}
		fmt.Fprintf(out, "%s (%s) %s\n", s.User.Name, s.User.Role, s.User.Phone)
		return nil

	case "guard":
		required := studio.NoRoleRequired
		if len(args) > 0 && args[0] != "any" {
			role, err := studio.ParseRole(args[0])
			if err != nil {
				return err
			}
			required = role
		}
		d := client.Authorize(required)
		if d.Path != "" {
			fmt.Fprintf(out, "%s %s\n", d.Kind, d.Path)
		} else {
			fmt.Fprintln(out, d.Kind)
		}
		return nil

	case "schedules":
		var (
			schedules []*studio.Schedule
			err       error
		)
		if len(args) > 0 {
			day, parseErr := studio.ParseDate(args[0])
			if parseErr != nil {
				return errors.Wrap(parseErr, "invalid date")
			}
			schedules, err = client.Schedules.ListByDate(ctx, day)
		} else {
			schedules, err = client.Schedules.List(ctx)
		}
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tTIME\tSPOTS")
		for _, s := range schedules {
			fmt.Fprintf(w, "%s\t%s\t%s-%s\t%d/%d\n", s.ID, s.Date, s.StartTime, s.EndTime, s.SpotsLeft(), s.Capacity)
		}
		return w.Flush()

	case "bookings":
		list := client.Bookings.Mine
		if len(args) > 0 && strings.TrimLeft(args[0], "-") == "all" {
			list = client.Bookings.List
		}
		bookings, err := list(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSCHEDULE\tSTATUS")
		for _, b := range bookings {
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.ScheduleID, b.Status)
		}
		return w.Flush()

	case "trainers":
		trainers, err := client.Trainers.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSPECIALIZATION\tRATING")
		for _, t := range trainers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\n", t.ID, t.Name, t.Specialization, t.Rating)
		}
		return w.Flush()

	case "book":
		if len(args) == 0 {
			return errors.New("book needs a schedule id")
		}
		b, err := client.Bookings.Create(ctx, &studio.CreateBookingParams{ScheduleID: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "booked %s (%s)\n", b.ID, b.Status)
		return nil

	case "cancel":
		if len(args) == 0 {
			return errors.New("cancel needs a booking id")
		}
		b, err := client.Bookings.Cancel(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "cancelled %s\n", b.ID)
		return nil
	}

	return errors.Errorf("unknown command %q", cmd)
}
