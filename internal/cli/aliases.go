package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rubisco-sfa/rubiplot/pkg/alias"
	"github.com/rubisco-sfa/rubiplot/pkg/authors"
	"github.com/rubisco-sfa/rubiplot/pkg/bib"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

// aliasesCommand creates the alias file management command.
func (c *CLI) aliasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "Draft, show, and review the curated author alias file",
	}

	cmd.AddCommand(c.aliasesBuildCommand())
	cmd.AddCommand(c.aliasesShowCommand())
	cmd.AddCommand(c.aliasesReviewCommand())

	return cmd
}

// aliasesBuildCommand creates the "aliases build" subcommand.
func (c *CLI) aliasesBuildCommand() *cobra.Command {
	var (
		force     bool
		aliasFile string
		glob      string
	)

	cmd := &cobra.Command{
		Use:   "build [bibdir]",
		Short: "Write a draft alias file from the bibliography",
		Long: `Scan the bibliography for every spelling of each roster member's last
name and write them to the alias file for hand editing. An existing file is
never replaced unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := networkOptions(cfg.Network, args, networkFlags{aliasFile: aliasFile, glob: glob})
			if err != nil {
				return err
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			candidates, err := runner.DraftAliases(cmd.Context(), opts, force)
			if err != nil {
				if errors.Is(err, errors.ErrCodeAliasFileExists) {
					printWarning("%s already exists; it is never replaced without --force", opts.AliasFile)
				}
				return err
			}

			spellings, missing := 0, 0
			for _, s := range candidates {
				spellings += len(s)
				if len(s) == 0 {
					missing++
				}
			}
			printSuccess("Wrote alias draft")
			printStats([]string{
				fmt.Sprintf("%d members", len(candidates)),
				fmt.Sprintf("%d spellings", spellings),
				fmt.Sprintf("%d not found", missing),
			}, nil)
			printFile(opts.AliasFile)
			printNextStep("Review it with", "rubiplot aliases review "+opts.BibDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing alias file")
	cmd.Flags().StringVar(&aliasFile, "aliases", "", "alias file to write (default author_alias.yaml)")
	cmd.Flags().StringVar(&glob, "glob", "", "bibliography file pattern (default *.bib)")

	return cmd
}

// aliasesShowCommand creates the "aliases show" subcommand.
func (c *CLI) aliasesShowCommand() *cobra.Command {
	var aliasFile string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the curated alias file as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			roster, err := cfg.Network.Roster()
			if err != nil {
				return err
			}
			if aliasFile == "" {
				aliasFile = cfg.Network.AliasFile
			}

			aliases, err := alias.LoadCuratedAliases(aliasFile)
			if err != nil {
				return err
			}
			if err := aliases.Validate(roster); err != nil {
				return err
			}
			fmt.Println(aliasTable(roster, aliases))
			printKeyValue("File", aliasFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&aliasFile, "aliases", "", "alias file (default author_alias.yaml)")

	return cmd
}

// aliasTable lists each roster member with their accepted spellings.
func aliasTable(roster authors.Roster, aliases alias.Aliases) string {
	lasts := roster.LastNames()
	rows := make([][]string, 0, len(lasts))
	for i, last := range lasts {
		spellings := aliases[last]
		cell := strings.Join(spellings, "; ")
		if len(spellings) == 0 {
			cell = "(none)"
		}
		rows = append(rows, []string{roster.Names[i], roster.Affiliations[i], cell})
	}
	return renderTable([]string{"Member", "Affiliation", "Spellings"}, rows)
}

// aliasesReviewCommand creates the "aliases review" subcommand.
func (c *CLI) aliasesReviewCommand() *cobra.Command {
	var (
		aliasFile string
		glob      string
	)

	cmd := &cobra.Command{
		Use:   "review [bibdir]",
		Short: "Interactively accept or reject candidate spellings",
		Long: `Open a checklist of every candidate spelling found in the bibliography.
Spellings already in the alias file start checked. Saving rewrites the file
with the checked spellings only.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := networkOptions(cfg.Network, args, networkFlags{aliasFile: aliasFile, glob: glob})
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			entries, err := bib.ParseDir(opts.BibDir, opts.Glob)
			if err != nil {
				return err
			}
			candidates := alias.BuildAliasCandidates(entries, opts.Roster)

			current, err := alias.LoadCuratedAliases(opts.AliasFile)
			switch {
			case errors.Is(err, errors.ErrCodeAliasNotCurated):
				current = candidates.Aliases()
				printInfo("No alias file yet; every candidate starts checked")
			case err != nil:
				return err
			}

			model := NewAliasReviewModel(candidates, current)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("review: %w", err)
			}
			m := final.(AliasReviewModel)
			if !m.Saved {
				printInfo("Review cancelled, nothing written")
				return nil
			}

			accepted := m.Aliases()
			if err := alias.Save(opts.AliasFile, accepted); err != nil {
				return err
			}
			printSuccess("Saved %d spellings", countSpellings(accepted))
			printFile(opts.AliasFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&aliasFile, "aliases", "", "alias file (default author_alias.yaml)")
	cmd.Flags().StringVar(&glob, "glob", "", "bibliography file pattern (default *.bib)")

	return cmd
}

func countSpellings(a alias.Aliases) int {
	n := 0
	for _, s := range a {
		n += len(s)
	}
	return n
}
