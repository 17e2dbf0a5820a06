package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/remindd/internal/model"
)

func writeTasks(w io.Writer, format string, tasks []model.Task) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

// readTasks accepts YAML or JSON; a JSON array is valid YAML.
func readTasks(r io.Reader) ([]model.Task, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var tasks []model.Task
	if err := yaml.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

func NewExportCmd(configPath *string) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openLoadedApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				return writeTasksAndClose(f, output, format, app.Store.List())
			}
			return writeTasks(w, format, app.Store.List())
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

// writeTasksAndClose reports a failed Close too, since a buffered write may
// only surface its error there.
func writeTasksAndClose(wc io.WriteCloser, name, format string, tasks []model.Task) error {
	if err := writeTasks(wc, format, tasks); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add tasks from a YAML or JSON export",
		Long:  "Add tasks from a YAML or JSON export. Imported tasks get new ids; completed and favorite flags are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			tasks, err := readTasks(f)
			if err != nil {
				return err
			}

			app, err := openLoadedApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			imported := 0
			for _, t := range tasks {
				created, err := app.Store.Create(ctx, t.Input())
				if err != nil {
					if created.ID == 0 {
						stderrWarn("skipping %q: %v", t.Name, err)
						continue
					}
					return err
				}
				if t.Completed {
					if _, err := app.Store.ToggleCompleted(ctx, created.ID); err != nil {
						return err
					}
				}
				if t.Favorite {
					if _, err := app.Store.ToggleFavorite(ctx, created.ID); err != nil {
						return err
					}
				}
				imported++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d task(s)\n", imported, len(tasks))
			return nil
		},
	}
}
