package cli

import (
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play session commands",
	}

	cmd.AddCommand(newPlayStartCmd())
	cmd.AddCommand(newPlayShowCmd())
	cmd.AddCommand(newPlayInputCmd())
	cmd.AddCommand(newPlayResetCmd())
	cmd.AddCommand(newPlayEndCmd())

	return cmd
}

func newPlayStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <game-id>",
		Short: "Start a new play session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"game_id": args[0]}
			var result PlaySession

			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the current session state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlaySession

			if err := client.Get("/api/v1/sessions/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayInputCmd() *cobra.Command {
	var action string
	var index int
	var text string

	cmd := &cobra.Command{
		Use:   "input <session-id>",
		Short: "Send an input to a session",
		Long: `Send a game input to a running session.

Every game routes on --action; --index and --text carry the payload where
the game needs one. Examples:

  arcade play input <id> --action place --index 4      (tic-tac-toe)
  arcade play input <id> --action guess --text 42      (number guesser)
  arcade play input <id> --action turn --text up       (snake)
  arcade play input <id> --action choose --text rock   (rock paper scissors)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"action": action}
			if cmd.Flags().Changed("index") {
				req["index"] = index
			}
			if text != "" {
				req["text"] = text
			}
			var result PlaySession

			if err := client.Post("/api/v1/sessions/"+args[0]+"/input", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "Input action (required)")
	cmd.Flags().IntVar(&index, "index", 0, "Index payload for the action")
	cmd.Flags().StringVar(&text, "text", "", "Text payload for the action")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}

func newPlayResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session-id>",
		Short: "Restart a session from scratch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlaySession

			if err := client.Post("/api/v1/sessions/"+args[0]+"/reset", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <session-id>",
		Short: "Dispose of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/sessions/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session ended")
			return nil
		},
	}
}
