package cli

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sebaraj/mcis-engine/pkg/config"
	"github.com/sebaraj/mcis-engine/pkg/dispatch"
	"github.com/sebaraj/mcis-engine/pkg/engine"
	"github.com/sebaraj/mcis-engine/pkg/graph"
	"github.com/sebaraj/mcis-engine/pkg/graphio"
)

func (c *CLI) runCommand() *cobra.Command {
	var (
		graphPaths  []string
		algorithm   string
		tag         string
		configPath  string
		outPath     string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute the MCIS across a set of graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, ok := parseAlgorithm(algorithm)
			if !ok {
				return fmt.Errorf("unknown algorithm %q (want bron-kerbosch or kpt)", algorithm)
			}

			graphs, err := loadGraphs(graphPaths)
			if err != nil {
				return err
			}

			opts := engineOptions(c.Logger, configPath)

			var tagPtr *string
			if tag != "" {
				tagPtr = &tag
			}

			d := dispatch.New(opts)

			spinner := NewSpinner(fmt.Sprintf("running %s", algo))
			spinner.Start()
			results, err := d.Run(graphs, algo, tagPtr)
			spinner.Stop()
			if err != nil {
				return err
			}

			if len(results) == 0 {
				printInfo("no result graph produced")
				return nil
			}

			selected, err := pickResult(results, interactive)
			if err != nil {
				return err
			}

			printSuccess("found %d result graph(s), %d nodes in selection", len(results), selected.NumNodes())
			printKeyValue("algorithm", algo.String())
			printKeyValue("nodes", fmt.Sprintf("%v", selected.NodeIDs()))

			if outPath != "" {
				if err := graphio.Save(outPath, selected); err != nil {
					return err
				}
				printInfo("wrote %s", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&graphPaths, "graph", nil, "path to a graph JSON file (repeatable, one per input graph)")
	cmd.Flags().StringVar(&algorithm, "algorithm", "bron-kerbosch", "bron-kerbosch or kpt")
	cmd.Flags().StringVar(&tag, "tag", "", "restrict matching to nodes sharing this tag")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML tunables file")
	cmd.Flags().StringVar(&outPath, "out", "", "write the selected result graph to this JSON path")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "pick among tied maximum-cardinality results interactively")
	_ = cmd.MarkFlagRequired("graph")

	return cmd
}

func loadGraphs(paths []string) ([]*graph.Graph, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one --graph is required")
	}
	graphs := make([]*graph.Graph, len(paths))
	for i, p := range paths {
		g, err := graphio.Load(p)
		if err != nil {
			return nil, err
		}
		graphs[i] = g
	}
	return graphs, nil
}

func engineOptions(logger *charmlog.Logger, configPath string) engine.Options {
	opts := engine.Defaults()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err == nil {
			opts = loaded
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "err", err)
		}
	}
	opts.Logger = logger
	return opts
}

// pickResult returns the result to act on: the sole result when there is
// exactly one, the first (by sorted node-ID order) when there are several
// and interactive is false, or the user's bubbletea selection otherwise.
func pickResult(results []*graph.Graph, interactive bool) (*graph.Graph, error) {
	if len(results) == 1 {
		return results[0], nil
	}

	sorted := append([]*graph.Graph(nil), results...)
	sort.Slice(sorted, func(i, j int) bool {
		return fmt.Sprintf("%v", sorted[i].NodeIDs()) < fmt.Sprintf("%v", sorted[j].NodeIDs())
	})

	if !interactive {
		return sorted[0], nil
	}

	model := NewResultListModel(sorted)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	chosen := final.(ResultListModel)
	if chosen.Selected == nil {
		return sorted[0], nil
	}
	return chosen.Selected, nil
}
