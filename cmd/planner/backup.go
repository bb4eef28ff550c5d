package main

import (
	"fmt"
	"os"

	"github.com/pbaille/planner/internal/api"
	"github.com/pbaille/planner/internal/store"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole planner to a JSON file",
		RunE: run(func(a *app, args []string) error {
			data, err := store.Encode(a.state.Document())
			if err != nil {
				return err
			}

			if out == "-" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if out == "" {
				out = store.ExportFileName(a.planner.Now())
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Printf("Exported to %s\n", out)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, '-' for stdout (default school-planner-DATE.json)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the whole planner with an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(a *app, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}

			doc, err := store.Decode(data)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			doc, err = a.state.Replace(doc)
			warnPersist(err)
			fmt.Printf("Imported %d goals, %d classes, %d homework, %d to-dos, %d books\n",
				len(doc.Goals), len(doc.Schedule), len(doc.Homework), len(doc.Todos), len(doc.Books))
			return nil
		}),
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: run(func(a *app, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			server := api.New(a.state, a.planner, a.log, addr)
			return server.Run()
		}),
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")
	return cmd
}
