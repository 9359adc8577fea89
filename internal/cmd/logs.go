package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/config"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/fsext"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the application log",
	Long: heredoc.Doc(`
		View the rotating log DevOps Dash writes under its data directory.
		Useful for debugging source or configuration problems without the TUI
		in the way.
	`),
	Example: `
# Print the last lines of the log
devops-dash logs

# Print the last 500 lines
devops-dash logs --tail 500

# Follow the log as it grows
devops-dash logs --follow
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		tailLines, _ := cmd.Flags().GetInt("tail")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		cwd, err := ResolveCwd(cmd)
		if err != nil {
			return err
		}
		cfg, err := config.Init(cwd, dataDir, false)
		if err != nil {
			return err
		}

		logPath := cfg.LogFilePath()
		if _, err := os.Stat(logPath); os.IsNotExist(err) {
			return fmt.Errorf("no log file at %q, run devops-dash here first", logPath)
		}

		if follow {
			t, err := tail.TailFile(logPath, tail.Config{
				Follow:   true,
				ReOpen:   true,
				Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
				Logger:   tail.DiscardingLogger,
			})
			if err != nil {
				return fmt.Errorf("failed to tail log file: %w", err)
			}
			defer t.Cleanup()

			for {
				select {
				case <-cmd.Context().Done():
					return t.Stop()
				case line, ok := <-t.Lines:
					if !ok {
						return nil
					}
					if line.Err != nil {
						return line.Err
					}
					fmt.Println(line.Text)
				}
			}
		}

		content, err := os.ReadFile(logPath)
		if err != nil {
			return fmt.Errorf("failed to read log file: %w", err)
		}
		normalized, _ := fsext.ToUnixLineEndings(string(content))
		lines := strings.Split(strings.TrimRight(normalized, "\n"), "\n")
		if len(lines) > tailLines {
			lines = lines[len(lines)-tailLines:]
		}
		fmt.Println(strings.Join(lines, "\n"))
		return nil
	},
}

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Follow the log in real time")
	logsCmd.Flags().IntP("tail", "t", 1000, "Show the last N lines")
}
