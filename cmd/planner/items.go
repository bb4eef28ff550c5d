package main

import (
	"fmt"
	"strings"

	"github.com/pbaille/planner/internal/domain"
	"github.com/pbaille/planner/internal/planner"
	"github.com/spf13/cobra"
)

// doneCmd toggles the record matching an id prefix
func doneCmd(c planner.Collection, fn func(domain.Document, string) domain.Document) *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle done",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(a *app, args []string) error {
			id, err := a.byID(c, args[0], fn)
			if err != nil {
				return err
			}
			fmt.Printf("Toggled %s\n", planner.ShortID(id))
			return nil
		}),
	}
}

func rmCmd(c planner.Collection, fn func(domain.Document, string) domain.Document) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: run(func(a *app, args []string) error {
			id, err := a.byID(c, args[0], fn)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %s\n", planner.ShortID(id))
			return nil
		}),
	}
}

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}

	var category, deadline string
	add := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(a *app, args []string) error {
			a.add("text", func(d domain.Document) (domain.Document, string) {
				return a.planner.AddGoal(d, planner.GoalDraft{
					Text:     strings.Join(args, " "),
					Category: category,
					Deadline: deadline,
				})
			})
			return nil
		}),
	}
	add.Flags().StringVarP(&category, "category", "c", "", "General, Study, Health, Personal or Career")
	add.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: run(func(a *app, args []string) error {
			goals := a.state.Document().Goals
			if len(goals) == 0 {
				fmt.Println("No goals yet. Use 'planner goal add' to create one.")
				return nil
			}
			for _, g := range goals {
				fmt.Printf("%s  %s %-9s %-10s %s\n", planner.ShortID(g.ID), check(g.Done), g.Category, orDash(g.Deadline), truncate(g.Text, 60))
			}
			return nil
		}),
	}

	cmd.AddCommand(add, list,
		doneCmd(planner.CollectionGoals, planner.ToggleGoal),
		rmCmd(planner.CollectionGoals, planner.RemoveGoal))
	return cmd
}

func classCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Manage the timetable",
	}

	var day, start, end, location string
	add := &cobra.Command{
		Use:   "add [subject]",
		Short: "Add a class to the timetable",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(a *app, args []string) error {
			a.add("subject", func(d domain.Document) (domain.Document, string) {
				return a.planner.AddClass(d, planner.ClassDraft{
					Subject:  strings.Join(args, " "),
					Day:      day,
					Start:    start,
					End:      end,
					Location: location,
				})
			})
			return nil
		}),
	}
	add.Flags().StringVarP(&day, "day", "d", "", "school day, Monday to Saturday")
	add.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	add.Flags().StringVar(&end, "end", "", "end time (HH:MM)")
	add.Flags().StringVarP(&location, "location", "l", "", "room or location")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the week timetable",
		RunE: run(func(a *app, args []string) error {
			for _, ds := range planner.ScheduleByDay(a.state.Document()) {
				fmt.Printf("%s\n", ds.Day)
				if len(ds.Entries) == 0 {
					fmt.Println("  (no classes)")
					continue
				}
				for _, e := range ds.Entries {
					printClass(e)
				}
			}
			return nil
		}),
	}

	cmd.AddCommand(add, list, rmCmd(planner.CollectionSchedule, planner.RemoveClass))
	return cmd
}

func printClass(e domain.ScheduleEntry) {
	line := fmt.Sprintf("  %s  %s-%s  %s", planner.ShortID(e.ID), orDash(e.Start), orDash(e.End), e.Subject)
	if e.Location != "" {
		line += " @ " + e.Location
	}
	fmt.Println(line)
}

func homeworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hw",
		Aliases: []string{"homework"},
		Short:   "Manage homework",
	}

	var subject, due, notes string
	add := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an assignment",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(a *app, args []string) error {
			a.add("title", func(d domain.Document) (domain.Document, string) {
				return a.planner.AddHomework(d, planner.HomeworkDraft{
					Title:   strings.Join(args, " "),
					Subject: subject,
					Due:     due,
					Notes:   notes,
				})
			})
			return nil
		}),
	}
	add.Flags().StringVarP(&subject, "subject", "s", "", "subject")
	add.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	add.Flags().StringVar(&notes, "notes", "", "notes")

	var upcoming bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List homework",
		RunE: run(func(a *app, args []string) error {
			items := a.state.Document().Homework
			if upcoming {
				items = planner.UpcomingHomework(a.state.Document())
			}
			if len(items) == 0 {
				fmt.Println("No homework.")
				return nil
			}
			for _, h := range items {
				printHomework(h)
			}
			return nil
		}),
	}
	list.Flags().BoolVarP(&upcoming, "upcoming", "u", false, "only the next pending assignments by due date")

	cmd.AddCommand(add, list,
		doneCmd(planner.CollectionHomework, planner.ToggleHomework),
		rmCmd(planner.CollectionHomework, planner.RemoveHomework))
	return cmd
}

func printHomework(h domain.HomeworkItem) {
	fmt.Printf("%s  %s %-10s %-12s %s\n", planner.ShortID(h.ID), check(h.Done), orDash(h.Due), orDash(h.Subject), truncate(h.Title, 50))
}

func todoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage extracurricular to-dos",
	}

	var date, category string
	add := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a to-do",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(a *app, args []string) error {
			a.add("text", func(d domain.Document) (domain.Document, string) {
				return a.planner.AddTodo(d, planner.TodoDraft{
					Date:     date,
					Text:     strings.Join(args, " "),
					Category: category,
				})
			})
			return nil
		}),
	}
	add.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD), default today")
	add.Flags().StringVarP(&category, "category", "c", "", "General, Sport, Music, Art, Club or Volunteer")

	var on string
	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List today's to-dos",
		RunE: run(func(a *app, args []string) error {
			items := a.state.Document().Todos
			if !all {
				if on == "" {
					on = a.planner.Today()
				}
				items = planner.TodayAgenda(a.state.Document(), on)
			}
			if len(items) == 0 {
				fmt.Println("Nothing planned.")
				return nil
			}
			for _, t := range items {
				printTodo(t)
			}
			return nil
		}),
	}
	list.Flags().StringVar(&on, "date", "", "show this date instead of today")
	list.Flags().BoolVarP(&all, "all", "a", false, "show every date")

	cmd.AddCommand(add, list,
		doneCmd(planner.CollectionTodos, planner.ToggleTodo),
		rmCmd(planner.CollectionTodos, planner.RemoveTodo))
	return cmd
}

func printTodo(t domain.TodoItem) {
	fmt.Printf("%s  %s %s %-9s %s\n", planner.ShortID(t.ID), check(t.Done), t.Date, t.Category, truncate(t.Text, 60))
}
