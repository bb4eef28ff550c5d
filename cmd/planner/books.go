package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pbaille/planner/internal/cover"
	"github.com/pbaille/planner/internal/domain"
	"github.com/pbaille/planner/internal/planner"
	"github.com/spf13/cobra"
)

func bookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Manage the reading log",
	}

	cmd.AddCommand(bookAddCmd(), bookListCmd(), bookUpdateCmd(), bookCoverCmd(),
		rmCmd(planner.CollectionBooks, planner.RemoveBook))
	return cmd
}

func bookAddCmd() *cobra.Command {
	var d planner.BookDraft

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a book",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(a *app, args []string) error {
			d.Title = strings.Join(args, " ")
			a.add("title", func(doc domain.Document) (domain.Document, string) {
				return a.planner.AddBook(doc, d)
			})
			return nil
		}),
	}

	cmd.Flags().StringVar(&d.Author, "author", "", "author")
	cmd.Flags().StringVar(&d.Cover, "cover", "", "cover image URL")
	cmd.Flags().StringVar(&d.Status, "status", "", "to-read, reading, finished or dropped")
	cmd.Flags().IntVar(&d.PagesRead, "read", 0, "pages read")
	cmd.Flags().IntVar(&d.TotalPages, "pages", 0, "total pages")
	cmd.Flags().StringVar(&d.Genre, "genre", "", "genre")
	cmd.Flags().StringVar(&d.Comment, "comment", "", "comment")
	cmd.Flags().IntVar(&d.Rating, "rating", 0, "rating 0-5")
	cmd.Flags().StringVar(&d.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&d.EndDate, "end", "", "end date (YYYY-MM-DD)")
	return cmd
}

func bookListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		RunE: run(func(a *app, args []string) error {
			want := domain.BookStatus("")
			if status != "" {
				want = domain.ParseBookStatus(status)
			}

			n := 0
			for _, b := range a.state.Document().Books {
				if want != "" && b.Status != want {
					continue
				}
				printBook(b)
				n++
			}
			if n == 0 {
				fmt.Println("No books. Use 'planner book add' to log one.")
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&status, "status", "", "only books with this status")
	return cmd
}

func printBook(b domain.Book) {
	line := fmt.Sprintf("%s  %-8s %3d%%  %s", planner.ShortID(b.ID), b.Status, planner.DisplayProgress(b), truncate(b.Title, 40))
	if b.Author != "" {
		line += " by " + b.Author
	}
	if b.Rating > 0 {
		line += " " + strings.Repeat("*", int(b.Rating))
	}
	fmt.Println(line)
}

func bookUpdateCmd() *cobra.Command {
	var title, author, coverURL, status, genre, comment, start, end string
	var read, pages, rating int

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update fields of a book",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&title, "title", "", "title")
	cmd.Flags().StringVar(&author, "author", "", "author")
	cmd.Flags().StringVar(&coverURL, "cover", "", "cover image URL")
	cmd.Flags().StringVar(&status, "status", "", "to-read, reading, finished or dropped")
	cmd.Flags().IntVar(&read, "read", 0, "pages read")
	cmd.Flags().IntVar(&pages, "pages", 0, "total pages")
	cmd.Flags().StringVar(&genre, "genre", "", "genre")
	cmd.Flags().StringVar(&comment, "comment", "", "comment")
	cmd.Flags().IntVar(&rating, "rating", 0, "rating 0-5")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")

	cmd.RunE = run(func(a *app, args []string) error {
		// only flags given on the command line are patched
		var bp planner.BookPatch
		set := cmd.Flags().Changed
		if set("title") {
			bp.Title = &title
		}
		if set("author") {
			bp.Author = &author
		}
		if set("cover") {
			bp.Cover = &coverURL
		}
		if set("status") {
			bp.Status = &status
		}
		if set("read") {
			bp.PagesRead = &read
		}
		if set("pages") {
			bp.TotalPages = &pages
		}
		if set("genre") {
			bp.Genre = &genre
		}
		if set("comment") {
			bp.Comment = &comment
		}
		if set("rating") {
			bp.Rating = &rating
		}
		if set("start") {
			bp.StartDate = &start
		}
		if set("end") {
			bp.EndDate = &end
		}
		if bp.Empty() {
			return errors.New("nothing to update, pass at least one field flag")
		}

		id, err := a.byID(planner.CollectionBooks, args[0], func(d domain.Document, id string) domain.Document {
			return planner.UpdateBook(d, id, bp)
		})
		if err != nil {
			return err
		}
		for _, b := range a.state.Document().Books {
			if b.ID == id {
				printBook(b)
			}
		}
		return nil
	})
	return cmd
}

func bookCoverCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "cover [id] [url]",
		Short: "Set a book cover from an image URL or a web page about the book",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(a *app, args []string) error {
			if !cover.IsURL(args[1]) {
				return fmt.Errorf("not a URL: %s", args[1])
			}
			id, err := planner.Resolve(a.state.Document(), planner.CollectionBooks, args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			fmt.Print("Looking up cover... ")
			src, err := cover.New().Resolve(ctx, args[1])
			if err != nil {
				fmt.Println("failed")
				return err
			}
			fmt.Println("done")

			a.apply(func(d domain.Document) domain.Document {
				return planner.UpdateBook(d, id, planner.BookPatch{Cover: &src})
			})
			fmt.Printf("Cover: %s\n", src)
			return nil
		}),
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "lookup timeout")
	return cmd
}
