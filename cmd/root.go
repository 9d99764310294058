// Package cmd implements the command-line interface for strand.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/strand-dl/strand/color"
	"github.com/strand-dl/strand/constant"
	"github.com/strand-dl/strand/icon"
	"github.com/strand-dl/strand/key"
	"github.com/strand-dl/strand/log"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/style"
	"github.com/strand-dl/strand/util"
	"github.com/strand-dl/strand/version"
	"github.com/strand-dl/strand/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist completed acquisitions to the localized history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnAcquire, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringP("proxy", "x", "", "Route all service traffic through the specified proxy URL")
	lo.Must0(viper.BindPFlag(key.NetworkProxy, rootCmd.PersistentFlags().Lookup("proxy")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the strand application.
var rootCmd = &cobra.Command{
	Use:   constant.Strand,
	Short: "A command-line framework for acquiring titles from streaming services",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiBlue).Render("    - A command-line framework for acquiring titles from streaming services"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
// Per-service subcommands are attached here rather than in init so every
// service package has registered its provider first.
func Execute() {
	buildServiceCommands()

	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)

		var envErr *service.EnvironmentError
		if errors.As(err, &envErr) {
			_, _ = fmt.Fprintf(os.Stderr, "%s %s requires %s\n", icon.Get(icon.Lock), envErr.Tag, envErr.Missing)
			if envErr.Remedy != "" {
				_, _ = fmt.Fprintf(os.Stderr, "  %s\n", style.Faint(envErr.Remedy))
			}
			os.Exit(1)
		}

		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
