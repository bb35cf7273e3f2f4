package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sandeepkv93/tasklist/internal/controller"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var asHTML bool
	var output string
	var filter string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the list as a standalone HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asHTML {
				return errors.New("export: only --html is supported")
			}
			f, err := model.ParseFilter(filter)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				defer file.Close()
				w = file
			}
			r := views.NewHTMLRenderer(w)
			s, err := app.openForCommand(cmd, controller.WithFilter(f), controller.WithRenderer(r))
			if err != nil {
				return err
			}
			defer s.Close()
			if err := r.Err(); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", true, "Render as HTML")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().StringVar(&filter, "filter", "all", "Which tasks to include (all|pending|completed)")
	return cmd
}
