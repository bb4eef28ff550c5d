package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/pbaille/planner/internal/domain"
	"github.com/pbaille/planner/internal/planner"
	"github.com/spf13/cobra"
)

// classesOn returns the classes held on the weekday of date, a DateLayout string
func classesOn(doc domain.Document, date string) ([]domain.ScheduleEntry, error) {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	day := domain.Weekday(t.Weekday().String())
	for _, ds := range planner.ScheduleByDay(doc) {
		if ds.Day == day {
			return ds.Entries, nil
		}
	}
	return nil, nil
}

func todayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the dashboard: counters, today's classes and to-dos, upcoming homework",
		RunE: run(func(a *app, args []string) error {
			doc := a.state.Document()
			now := a.planner.Now()
			today := date
			if today == "" {
				today = domain.DateOf(now)
			}
			classes, err := classesOn(doc, today)
			if err != nil {
				return err
			}

			if doc.Profile.Name != "" {
				fmt.Printf("Hello, %s", doc.Profile.Name)
				if doc.Profile.School != "" {
					fmt.Printf(" (%s, year %d)", doc.Profile.School, doc.Profile.Year)
				}
				fmt.Println()
			}

			s := planner.Summarize(doc, today)
			fmt.Printf("%s\n", today)
			fmt.Printf("Goals %d/%d  Homework pending %d  To-dos today %d  Reading %d\n\n",
				s.GoalsDone, s.GoalsTotal, s.PendingHomework, s.TodayTodos, s.BooksReading)

			fmt.Println("Classes:")
			if len(classes) == 0 {
				fmt.Println("  (none)")
			}
			for _, e := range classes {
				printClass(e)
			}

			fmt.Println("\nTo-dos:")
			todos := planner.TodayAgenda(doc, today)
			if len(todos) == 0 {
				fmt.Println("  (none)")
			}
			for _, t := range todos {
				fmt.Print("  ")
				printTodo(t)
			}

			fmt.Println("\nUpcoming homework:")
			hw := planner.UpcomingHomework(doc)
			if len(hw) == 0 {
				fmt.Println("  (none)")
			}
			for _, h := range hw {
				fmt.Print("  ")
				printHomework(h)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "show another date (YYYY-MM-DD)")
	return cmd
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search every collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(a *app, args []string) error {
			query := strings.Join(args, " ")
			matches := planner.Search(a.state.Document(), query)
			if len(matches) == 0 {
				fmt.Println("No results.")
				return nil
			}

			fmt.Printf("Found %d results:\n\n", len(matches))
			for _, m := range matches {
				fmt.Printf("%s  %-8s %s\n", planner.ShortID(m.ID), m.Collection, truncate(m.Label, 60))
			}
			return nil
		}),
	}
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the student profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: run(func(a *app, args []string) error {
			doc := a.state.Document()
			fmt.Printf("Name:   %s\n", orDash(doc.Profile.Name))
			fmt.Printf("School: %s\n", orDash(doc.Profile.School))
			fmt.Printf("Year:   %d\n", doc.Profile.Year)
			fmt.Printf("Theme:  %s\n", doc.Theme)
			return nil
		}),
	}

	var name, school string
	var year int
	set := &cobra.Command{
		Use:   "set",
		Short: "Set profile fields",
	}
	set.Flags().StringVar(&name, "name", "", "student name")
	set.Flags().StringVar(&school, "school", "", "school")
	set.Flags().IntVar(&year, "year", 0, "school year")
	set.RunE = run(func(a *app, args []string) error {
		var pp planner.ProfilePatch
		if set.Flags().Changed("name") {
			pp.Name = &name
		}
		if set.Flags().Changed("school") {
			pp.School = &school
		}
		if set.Flags().Changed("year") {
			pp.Year = &year
		}
		if pp == (planner.ProfilePatch{}) {
			return fmt.Errorf("nothing to set, pass --name, --school or --year")
		}

		doc := a.apply(func(d domain.Document) domain.Document { return planner.SetProfile(d, pp) })
		fmt.Printf("Profile: %s, %s, year %d\n", orDash(doc.Profile.Name), orDash(doc.Profile.School), doc.Profile.Year)
		return nil
	})

	cmd.AddCommand(show, set)
	return cmd
}

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: run(func(a *app, args []string) error {
			if len(args) == 0 {
				fmt.Println(a.state.Document().Theme)
				return nil
			}

			t := planner.Transition(planner.ToggleTheme)
			if !strings.EqualFold(args[0], "toggle") {
				theme, err := planner.ParseTheme(args[0])
				if err != nil {
					return err
				}
				t = func(d domain.Document) domain.Document { return planner.SetTheme(d, theme) }
			}

			doc := a.apply(t)
			fmt.Printf("Theme: %s\n", doc.Theme)
			return nil
		}),
	}
}
