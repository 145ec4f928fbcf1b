package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sebaraj/mcis-engine/pkg/graphio"
	"github.com/sebaraj/mcis-engine/pkg/render/dot"
)

func (c *CLI) exportCommand() *cobra.Command {
	var (
		graphPath string
		outPath   string
		svg       bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a graph JSON file as Graphviz DOT or SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.Load(graphPath)
			if err != nil {
				return err
			}

			if svg {
				data, err := dot.RenderSVG(g)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return err
				}
				printSuccess("wrote %s", outPath)
				return nil
			}

			src := dot.ToDOT(g)
			if outPath == "" {
				cmd.Println(src)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(src), 0o644); err != nil {
				return err
			}
			printSuccess("wrote %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "path to a graph JSON file")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (stdout if omitted and --svg is not set)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of DOT text")
	_ = cmd.MarkFlagRequired("graph")

	return cmd
}
