package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/paictl/internal/skills"
)

var (
	skillNameStyle = lipgloss.NewStyle().Bold(true)
	skillPathStyle = lipgloss.NewStyle().Faint(true)
)

// skillsFlags holds the parsed flags shared by the skills subcommands.
type skillsFlags struct {
	jsonOut bool
}

func newSkillsCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "List and route workspace skills",
	}

	var listFlags skillsFlags
	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List discovered skills",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillsList(cmd.OutOrStdout(), gf, listFlags)
		},
	}
	listCmd.Flags().BoolVar(&listFlags.jsonOut, "json", false, "Emit JSON")

	var routeFlags skillsFlags
	routeCmd := &cobra.Command{
		Use:          "route <query>",
		Short:        "Route a natural-language request to the best-matching skill",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillsRoute(cmd.OutOrStdout(), gf, routeFlags, strings.Join(args, " "))
		},
	}
	routeCmd.Flags().BoolVar(&routeFlags.jsonOut, "json", false, "Emit JSON with scores and runners-up")

	cmd.AddCommand(listCmd, routeCmd)
	return cmd
}

func runSkillsList(w io.Writer, gf *globalFlags, flags skillsFlags) error {
	root, s, err := loadWorkspaceSettings(gf)
	if err != nil {
		return codeError(exitConfig, "%s", err)
	}
	logVerbose(gf.verbose, "Discovering skills under %s", strings.Join(s.SkillDirs(), ", "))
	list := skills.Discover(root, s.SkillDirs())

	if flags.jsonOut {
		if list == nil {
			// Consumers always get an array, never null.
			list = []skills.Skill{}
		}
		return writeJSON(w, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No skills found.")
		return nil
	}

	nameWidth := 0
	for _, sk := range list {
		if len(sk.Name) > nameWidth {
			nameWidth = len(sk.Name)
		}
	}
	for _, sk := range list {
		pad := strings.Repeat(" ", nameWidth-len(sk.Name))
		fmt.Fprintf(w, "%s%s  %s\n", skillNameStyle.Render(sk.Name), pad, sk.Description)
		fmt.Fprintf(w, "%s  %s\n", strings.Repeat(" ", nameWidth), skillPathStyle.Render(sk.Path))
	}
	return nil
}

func runSkillsRoute(w io.Writer, gf *globalFlags, flags skillsFlags, query string) error {
	root, s, err := loadWorkspaceSettings(gf)
	if err != nil {
		return codeError(exitConfig, "%s", err)
	}
	matches := skills.Route(skills.Discover(root, s.SkillDirs()), query)
	if len(matches) == 0 {
		return codeError(exitViolations, "no matching skill for %q", query)
	}

	if flags.jsonOut {
		return writeJSON(w, struct {
			Query   string         `json:"query"`
			Best    skills.Match   `json:"best"`
			Matches []skills.Match `json:"matches"`
		}{Query: query, Best: matches[0], Matches: matches})
	}

	best := matches[0]
	fmt.Fprintf(w, "%s  %s\n", skillNameStyle.Render(best.Skill.Name), skillPathStyle.Render(best.Skill.Path))
	for _, m := range matches[1:] {
		fmt.Fprintf(w, "  runner-up: %s (score %d)\n", m.Skill.Name, m.Score)
	}
	return nil
}
