package cmd

import (
	"fmt"
	"log/slog"

	"charm.land/lipgloss/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/spf13/cobra"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/update"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/version"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer release",
	Long: heredoc.Doc(`
		Ask GitHub for the latest DevOps Dash release and report whether an
		update is available. Nothing is downloaded or installed.
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Keep log output off stdout.
		slog.SetDefault(slog.New(slog.DiscardHandler))

		info, err := update.Check(cmd.Context(), version.Version, update.Default)
		if err != nil {
			return err
		}

		if info.IsDevelopment() {
			fmt.Printf("You are running a development build (%s). The latest release is v%s.\n", info.Current, info.Latest)
			return nil
		}
		if !info.Available() {
			fmt.Printf("devops-dash v%s is up to date.\n", info.Current)
			return nil
		}

		// This style is more-or-less copied from Fang's error message,
		// adapted for success.
		headerStyle := lipgloss.NewStyle().
			Foreground(charmtone.Butter).
			Background(charmtone.Guac).
			Bold(true).
			Padding(0, 1).
			Margin(1).
			MarginLeft(2).
			SetString("UPDATE AVAILABLE")
		textStyle := lipgloss.NewStyle().
			MarginLeft(2).
			SetString(fmt.Sprintf("v%s → v%s", info.Current, info.Latest))
		urlStyle := lipgloss.NewStyle().
			MarginLeft(2).
			Faint(true).
			SetString(info.URL)

		fmt.Printf("%s\n%s\n%s\n\n", headerStyle.Render(), textStyle.Render(), urlStyle.Render())
		return nil
	},
}
