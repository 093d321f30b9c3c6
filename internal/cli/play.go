package cli

import (
	"math/rand/v2"
	"time"

	"animal-quiz-service/internal/config"
	"animal-quiz-service/internal/domain"
	"animal-quiz-service/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewPlayCmd runs the quiz in the terminal without a server.
func NewPlayCmd(configPath *string) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			model := tui.NewModel(domain.Questions(), rand.New(rand.NewPCG(seed, seed>>1)), cfg.Quiz.ShareURL)

			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if result, ok := final.(tui.Model).Result(); ok {
				logger.Debug("quiz finished in terminal", zap.Stringer("result", result))
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for option shuffling (0 picks one from the clock)")
	return cmd
}
