package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/team-planner/internal/config"
	"github.com/username/team-planner/internal/export"
	"github.com/username/team-planner/internal/planner"
	"github.com/username/team-planner/internal/store"
	"github.com/username/team-planner/pkg/dateutil"
)

// deps bundles everything a subcommand needs to talk to the store
type deps struct {
	cfg      *config.Config
	users    *planner.UserRepository
	holidays *planner.EventRepository
	wfh      *planner.EventRepository
}

func initializeDeps() (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := store.NewClient(cfg.Store.BaseURL, cfg.Store.GetTimeout(), logger)

	return &deps{
		cfg:      cfg,
		users:    planner.NewUserRepository(client, logger),
		holidays: planner.NewHolidayRepository(client, logger),
		wfh:      planner.NewWFHRepository(client, logger),
	}, nil
}

func (d *deps) eventRepo(collection string) *planner.EventRepository {
	if collection == "wfh" {
		return d.wfh
	}
	return d.holidays
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage team members",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := initializeDeps()
			if err != nil {
				return err
			}

			users := d.users.LoadAll()
			if len(users) == 0 {
				fmt.Println("No team members yet")
				return nil
			}
			for _, u := range users {
				fmt.Printf("  %-24s %-16s %s\n", u.ID, u.Name, u.Color)
			}
			return nil
		},
	})

	var name, color string

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			d, err := initializeDeps()
			if err != nil {
				return err
			}

			u := d.users.Add(name, color)
			fmt.Printf("✅ Added %s (%s)\n", u.Name, u.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Member name")
	addCmd.Flags().StringVar(&color, "color", "#4a90d9", "Calendar color")
	cmd.AddCommand(addCmd)

	var editName, editColor string
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename or recolor a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := initializeDeps()
			if err != nil {
				return err
			}

			d.users.Edit(args[0], editName, editColor)
			fmt.Printf("✅ Updated %s\n", args[0])
			return nil
		},
	}
	editCmd.Flags().StringVar(&editName, "name", "", "Member name")
	editCmd.Flags().StringVar(&editColor, "color", "", "Calendar color")
	cmd.AddCommand(editCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := initializeDeps()
			if err != nil {
				return err
			}

			d.users.Remove(args[0])
			fmt.Printf("✅ Removed %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func eventsCmd(collection, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   collection,
		Short: short,
	}

	var filterMode, month string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + collection,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := planner.ParseFilterMode(filterMode)
			if err != nil {
				return err
			}
			ref, err := parseMonth(month)
			if err != nil {
				return err
			}

			d, err := initializeDeps()
			if err != nil {
				return err
			}

			events := planner.FilterEvents(d.eventRepo(collection).LoadAll(), mode, ref)
			if len(events) == 0 {
				fmt.Println("Nothing to show")
				return nil
			}
			for _, s := range planner.SummarizeEvents(events, d.users.LoadAll()) {
				fmt.Printf("  %-24s %-20s %-16s %2d day(s)  %s\n",
					s.ID, s.Name, s.Owner, s.Days, s.DateRange)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&filterMode, "filter", "all", "Filter: all, old or thisMonth")
	listCmd.Flags().StringVar(&month, "month", "", "Reference month for filtering (YYYY-MM, default current)")
	cmd.AddCommand(listCmd)

	var name, user, dayPart string
	var dates []string

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a " + strings.TrimSuffix(collection, "s") + " event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || user == "" {
				return fmt.Errorf("--name and --user are required")
			}
			set, err := parseDates(dates)
			if err != nil {
				return err
			}
			if set.Len() == 0 {
				return fmt.Errorf("no dates selected")
			}

			d, err := initializeDeps()
			if err != nil {
				return err
			}

			rec := d.eventRepo(collection).Add(name, user, set, planner.ParseDayPart(dayPart))
			fmt.Printf("✅ Added %s (%s), %d day(s)\n", rec.Name, rec.ID, rec.Dates.Len())
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Event name")
	addCmd.Flags().StringVar(&user, "user", "", "Owning member id")
	addCmd.Flags().StringSliceVar(&dates, "dates", nil, "Dates (YYYY-MM-DD, comma separated)")
	addCmd.Flags().StringVar(&dayPart, "day-part", "full", "Day part: full, am or pm")
	cmd.AddCommand(addCmd)

	var editName, editUser, editDayPart string
	var editDates []string

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace an event's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if editName == "" || editUser == "" {
				return fmt.Errorf("--name and --user are required")
			}
			set, err := parseDates(editDates)
			if err != nil {
				return err
			}

			d, err := initializeDeps()
			if err != nil {
				return err
			}

			d.eventRepo(collection).Edit(args[0], editName, editUser, set, planner.ParseDayPart(editDayPart))
			fmt.Printf("✅ Updated %s\n", args[0])
			return nil
		},
	}
	editCmd.Flags().StringVar(&editName, "name", "", "Event name")
	editCmd.Flags().StringVar(&editUser, "user", "", "Owning member id")
	editCmd.Flags().StringSliceVar(&editDates, "dates", nil, "Dates (YYYY-MM-DD, comma separated)")
	editCmd.Flags().StringVar(&editDayPart, "day-part", "full", "Day part: full, am or pm")
	cmd.AddCommand(editCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := initializeDeps()
			if err != nil {
				return err
			}

			d.eventRepo(collection).Remove(args[0])
			fmt.Printf("✅ Removed %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func calendarCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the month calendar with holiday and WFH markers",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := initializeDeps()
			if err != nil {
				return err
			}

			opts := []planner.Option{
				planner.WithClearSelectionOnSave(d.cfg.Planner.ClearSelectionOnSave),
			}
			if month != "" {
				ref, err := parseMonth(month)
				if err != nil {
					return err
				}
				opts = append(opts, planner.WithCursor(ref.Year, ref.Month))
			}

			cal := planner.NewCalendar(logger, opts...)
			users := d.users.LoadAll()
			cal.Ingest(users, d.holidays.LoadAll(), d.wfh.LoadAll())

			renderCalendar(cal, users)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM, default current)")

	return cmd
}

func renderCalendar(cal *planner.Calendar, users []planner.UserRecord) {
	cur := cal.Cursor()
	fmt.Printf("\n📅 %s %d\n", cur.Month, cur.Year)
	fmt.Println("  Su  Mo  Tu  We  Th  Fr  Sa")

	for _, week := range cal.MonthGrid() {
		for _, cell := range week {
			if cell.Day == 0 {
				fmt.Print("    ")
				continue
			}
			mark := " "
			switch {
			case len(cell.Markers) > 1:
				mark = "+"
			case len(cell.Markers) == 1 && cell.Markers[0].Kind == planner.KindWFH:
				mark = "~"
			case len(cell.Markers) == 1:
				mark = "*"
			}
			fmt.Printf(" %2d%s", cell.Day, mark)
		}
		fmt.Println()
	}
	fmt.Println("\nLegend: '*' holiday, '~' WFH, '+' both")

	printMonthEvents(cal, users, planner.KindHoliday, "Holidays")
	printMonthEvents(cal, users, planner.KindWFH, "WFH")
}

func printMonthEvents(cal *planner.Calendar, users []planner.UserRecord, kind planner.EventKind, title string) {
	events := planner.FilterEvents(cal.Events(kind), planner.FilterThisMonth, cal.Cursor())
	if len(events) == 0 {
		return
	}

	fmt.Printf("\n%s this month:\n", title)
	for _, s := range planner.SummarizeEvents(events, users) {
		fmt.Printf("  %-20s %-16s %s\n", s.Name, s.Owner, s.DateRange)
	}
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all holidays and WFH days as an ICS calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := initializeDeps()
			if err != nil {
				return err
			}

			exporter := export.NewExporter(logger)
			if err := exporter.WriteFile(out, d.holidays.LoadAll(), d.wfh.LoadAll(), d.users.LoadAll()); err != nil {
				return err
			}

			fmt.Printf("✅ Exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "team-planner.ics", "Output ICS file path")

	return cmd
}

func parseMonth(s string) (planner.Cursor, error) {
	if s == "" {
		now := time.Now()
		return planner.Cursor{Year: now.Year(), Month: now.Month()}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return planner.Cursor{}, fmt.Errorf("invalid month %q, want YYYY-MM: %w", s, err)
	}
	return planner.Cursor{Year: t.Year(), Month: t.Month()}, nil
}

func parseDates(dates []string) (planner.DateSet, error) {
	set := planner.NewDateSet()
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if !dateutil.IsISODate(d) {
			return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", d)
		}
		set.Add(d)
	}
	return set, nil
}
