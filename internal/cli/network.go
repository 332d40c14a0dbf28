package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rubisco-sfa/rubiplot/pkg/config"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
	"github.com/rubisco-sfa/rubiplot/pkg/network"
	"github.com/rubisco-sfa/rubiplot/pkg/pipeline"
)

// networkFlags holds the command-line flags for the network command.
// Empty values keep the configured setting.
type networkFlags struct {
	output    string // output base path, one file per format
	formats   string // comma-separated formats
	vizType   string // chord or nodelink
	aliasFile string // curated alias file
	glob      string // bibliography file pattern
	title     string // chord diagram title
	detailed  bool   // affiliation and paper count in nodelink labels
	isolated  bool   // keep members without co-authors in nodelink
	table     bool   // print the papers table
}

// networkCommand creates the network command.
func (c *CLI) networkCommand() *cobra.Command {
	var flags networkFlags

	cmd := &cobra.Command{
		Use:   "network [bibdir]",
		Short: "Build the co-authorship network figure",
		Long: `Build the co-authorship network of the roster from the BibTeX files in
bibdir. Names are matched through the curated alias file, which must exist;
create it with "rubiplot aliases build".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := networkOptions(cfg.Network, args, flags)
			if err != nil {
				return err
			}
			output := cfg.Network.Output
			if flags.output != "" {
				output = flags.output
			}
			return c.runNetwork(cmd.Context(), opts, output, flags.table)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output base path (default from config: author_network)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), pdf, png, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.vizType, "type", "t", "", "visualization type: chord (default), nodelink")
	cmd.Flags().StringVar(&flags.aliasFile, "aliases", "", "curated alias file (default author_alias.yaml)")
	cmd.Flags().StringVar(&flags.glob, "glob", "", "bibliography file pattern (default *.bib)")
	cmd.Flags().StringVar(&flags.title, "title", "", "chord diagram title")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "show affiliation and paper count (nodelink)")
	cmd.Flags().BoolVar(&flags.isolated, "isolated", false, "keep members without co-authors (nodelink)")
	cmd.Flags().BoolVar(&flags.table, "table", false, "print papers per member")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.NetworkFormats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(pipeline.VizTypes, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// networkOptions merges the config section, the positional bibdir, and flags.
func networkOptions(cfg config.NetworkConfig, args []string, flags networkFlags) (pipeline.NetworkOptions, error) {
	roster, err := cfg.Roster()
	if err != nil {
		return pipeline.NetworkOptions{}, err
	}
	opts := pipeline.NetworkOptions{
		BibDir:    cfg.BibDir,
		Glob:      cfg.Glob,
		AliasFile: cfg.AliasFile,
		Roster:    roster,
		VizType:   cfg.Type,
		Formats:   parseFormats(flags.formats, cfg.Formats),
		Detailed:  cfg.Detailed || flags.detailed,
		Isolated:  flags.isolated,
		Title:     flags.title,
	}
	if len(args) > 0 {
		opts.BibDir = args[0]
	}
	if flags.glob != "" {
		opts.Glob = flags.glob
	}
	if flags.aliasFile != "" {
		opts.AliasFile = flags.aliasFile
	}
	if flags.vizType != "" {
		opts.VizType = flags.vizType
	}
	return opts, nil
}

func (c *CLI) runNetwork(ctx context.Context, opts pipeline.NetworkOptions, output string, showTable bool) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.RunNetwork(ctx, opts)
	if err != nil {
		if errors.Is(err, errors.ErrCodeAliasNotCurated) {
			printError("No curated alias file at %s", opts.AliasFile)
			printNextStep("Draft one with", "rubiplot aliases build "+opts.BibDir)
		}
		return err
	}

	paths, err := pipeline.WriteArtifacts(output, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	net := result.Network
	printSuccess("Co-authorship network")
	printStats([]string{
		fmt.Sprintf("%d records", net.Stats.Entries),
		fmt.Sprintf("%d skipped", net.Stats.Skipped),
		fmt.Sprintf("%d members", net.Size()),
		fmt.Sprintf("%d edges", len(net.Edges())),
	}, nil)
	for _, p := range paths {
		printFile(p)
	}
	if showTable {
		printNewline()
		fmt.Println(papersTable(net))
	}
	return nil
}

// papersTable lists members by paper count, most first.
func papersTable(net *network.Network) string {
	order := make([]int, net.Size())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return net.Papers[order[a]] > net.Papers[order[b]]
	})

	rows := make([][]string, 0, len(order))
	for _, i := range order {
		coauthors := 0
		for j := 0; j < net.Size(); j++ {
			if net.Weight(i, j) > 0 {
				coauthors++
			}
		}
		rows = append(rows, []string{
			net.Roster.Names[i],
			net.Roster.Affiliations[i],
			strconv.Itoa(net.Papers[i]),
			strconv.Itoa(coauthors),
		})
	}
	return renderTable([]string{"Member", "Affiliation", "Papers", "Co-authors"}, rows)
}
