package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/faunadex/faunadex-go/cmd/realtime"
	"github.com/faunadex/faunadex-go/cmd/recognize"
	"github.com/faunadex/faunadex-go/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "faunadex",
		Short: "FaunaDex animal recognition service",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		realtime.Command(settings),
		recognize.Command(settings),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cmd.Flags().Parse(args); err != nil {
			return err
		}
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags binds global command line flags to their viper keys.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.PersistentFlags().BoolVarP(&settings.Main.Debug, "debug", "d", viper.GetBool("main.debug"), "Enable debug output")
	cmd.PersistentFlags().StringVar(&settings.Detector.ModelPath, "detector-model", viper.GetString("detector.modelpath"), "Path to the detector tflite model")
	cmd.PersistentFlags().StringVar(&settings.Classifier.ModelPath, "classifier-model", viper.GetString("classifier.modelpath"), "Path to the fallback classifier tflite model")

	if err := viper.BindPFlag("main.debug", cmd.PersistentFlags().Lookup("debug")); err != nil {
		cobra.CheckErr(err)
	}
	if err := viper.BindPFlag("detector.modelpath", cmd.PersistentFlags().Lookup("detector-model")); err != nil {
		cobra.CheckErr(err)
	}
	if err := viper.BindPFlag("classifier.modelpath", cmd.PersistentFlags().Lookup("classifier-model")); err != nil {
		cobra.CheckErr(err)
	}
}
