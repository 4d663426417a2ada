package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/openhunt/openhunt/cmd/openhunt/output"
	"github.com/openhunt/openhunt/cmd/openhunt/tui"
)

// moderateCmd reviews pending submissions interactively
var moderateCmd = &cobra.Command{
	Use:   "moderate",
	Short: "Review pending submissions interactively",
	Long: `Open an interactive queue of pending product submissions. Each entry
can be approved or rejected; decisions are written through the data
access facade immediately.

Keys:
  a       - approve the selected product
  r       - reject the selected product
  enter   - confirm the decision
  q       - quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModerate()
	},
}

func init() {
	rootCmd.AddCommand(moderateCmd)
}

func runModerate() error {
	ctx := context.Background()

	st, _, _, err := openStore(ctx)
	if err != nil {
		output.Error("Failed to open store: %v", err)
		return err
	}
	defer st.Close()

	program := tea.NewProgram(tui.NewModerateModel(st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		output.Error("Moderation UI failed: %v", err)
		return err
	}
	return nil
}
