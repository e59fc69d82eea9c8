package recognize

import (
	"github.com/spf13/cobra"

	"github.com/faunadex/faunadex-go/internal/analysis"
	"github.com/faunadex/faunadex-go/internal/conf"
)

// Command creates a new command for single image recognition.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "recognize [image file]",
		Short: "Recognize the animal in an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analysis.RecognizeFile(settings, args[0])
		},
	}
}
