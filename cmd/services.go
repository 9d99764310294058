// Package cmd implements the command-line interface for strand.
package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/strand-dl/strand/color"
	"github.com/strand-dl/strand/constant"
	"github.com/strand-dl/strand/filesystem"
	"github.com/strand-dl/strand/icon"
	"github.com/strand-dl/strand/provider"
	"github.com/strand-dl/strand/style"
	"github.com/strand-dl/strand/util"
	"github.com/strand-dl/strand/where"
)

func init() {
	rootCmd.AddCommand(servicesCmd)
}

// servicesCmd provides a parent command for managing service integrations.
var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage built-in and custom service integrations",
}

func init() {
	servicesCmd.AddCommand(servicesListCmd)

	servicesListCmd.Flags().BoolP("raw", "r", false, "Suppress header and metadata descriptions in the output")
	servicesListCmd.Flags().BoolP("custom", "c", false, "Display only user-installed custom Lua services")
	servicesListCmd.Flags().BoolP("builtin", "b", false, "Display only compiled-in services")

	servicesListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	servicesListCmd.SetOut(os.Stdout)
}

// servicesListCmd displays a summary of all registered service integrations.
var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display a collection of all registered service integrations",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader := !lo.Must(cmd.Flags().GetBool("raw"))
		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		h := func(s string) {
			if printHeader {
				cmd.Println(headerStyle(s))
			}
		}

		describe := func(p *provider.Provider) string {
			if !printHeader {
				return p.Tag
			}

			var parts []string
			parts = append(parts, p.Tag)
			if len(p.Aliases) > 0 {
				parts = append(parts, style.Faint(strings.Join(p.Aliases, ", ")))
			}
			if len(p.Geofence) > 0 {
				parts = append(parts, style.Fg(color.Yellow)(strings.Join(p.Geofence, "+")))
			}
			return strings.Join(parts, " ")
		}

		printBuiltin := func() {
			h("Builtin:")
			for _, p := range provider.Builtins() {
				cmd.Println(describe(p))
			}
		}

		printCustom := func() {
			h("Custom:")
			for _, p := range provider.Customs() {
				cmd.Println(describe(p))
			}
		}

		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			printBuiltin()
		case lo.Must(cmd.Flags().GetBool("custom")):
			printCustom()
		default:
			printBuiltin()
			if printHeader {
				cmd.Println()
			}
			printCustom()
		}
	},
}

func init() {
	servicesCmd.AddCommand(servicesRemoveCmd)

	servicesRemoveCmd.Flags().StringArrayP("tag", "t", []string{}, "Specify the tag of the custom service(s) to uninstall")
	lo.Must0(servicesRemoveCmd.RegisterFlagCompletionFunc("tag", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		scripts, err := filesystem.API().ReadDir(where.Services())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return lo.FilterMap(scripts, func(item os.FileInfo, _ int) (string, bool) {
			name := item.Name()
			if !strings.HasSuffix(name, provider.CustomServiceExtension) {
				return "", false
			}

			return util.FileStem(filepath.Base(name)), true
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// servicesRemoveCmd facilitates the uninstallation of custom Lua services.
var servicesRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Permanently uninstall specified custom Lua services from the system",
	Run: func(cmd *cobra.Command, args []string) {
		for _, tag := range lo.Must(cmd.Flags().GetStringArray("tag")) {
			path := filepath.Join(where.Services(), strings.ToLower(tag)+provider.CustomServiceExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(strings.ToUpper(tag)))
		}
	},
}

func init() {
	servicesCmd.AddCommand(servicesGenCmd)

	servicesGenCmd.Flags().StringP("tag", "t", "", "The tag of the new service, e.g. EXMP")
	servicesGenCmd.Flags().StringP("url", "u", "", "The base URL of the target service")

	lo.Must0(servicesGenCmd.MarkFlagRequired("tag"))
	lo.Must0(servicesGenCmd.MarkFlagRequired("url"))
}

// servicesGenCmd scaffolds a boilerplate Lua service script.
var servicesGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new Lua service script using a predefined template",
	Long:  `Generate a boilerplate Lua service script with the hook functions and metadata.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		var author string
		usr, err := user.Current()
		if err == nil {
			author = usr.Username
		} else {
			author = "Anonymous"
		}

		s := struct {
			Tag           string
			URL           string
			GetTitlesFn   string
			GetTracksFn   string
			GetChaptersFn string
			LicenseFn     string
			Author        string
		}{
			Tag:           strings.ToUpper(lo.Must(cmd.Flags().GetString("tag"))),
			URL:           lo.Must(cmd.Flags().GetString("url")),
			GetTitlesFn:   constant.GetTitlesFn,
			GetTracksFn:   constant.GetTracksFn,
			GetChaptersFn: constant.GetChaptersFn,
			LicenseFn:     constant.LicenseFn,
			Author:        author,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("service").Funcs(funcMap).Parse(constant.ServiceTemplate)
		handleErr(err)

		target := filepath.Join(where.Services(), strings.ToLower(util.SanitizeFilename(s.Tag))+provider.CustomServiceExtension)
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		err = tmpl.Execute(f, s)
		handleErr(err)

		cmd.Println(target)
	},
}
