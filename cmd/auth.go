// Package cmd implements the command-line interface for strand.
package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/strand-dl/strand/auth"
	"github.com/strand-dl/strand/color"
	"github.com/strand-dl/strand/credential"
	"github.com/strand-dl/strand/icon"
	"github.com/strand-dl/strand/provider"
	"github.com/strand-dl/strand/style"
)

func completionServiceTags(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(provider.All(), func(p *provider.Provider, _ int) string {
		return p.Tag
	}), cobra.ShellCompDirectiveNoFileComp
}

// resolveTag normalizes a tag argument against the registry.
func resolveTag(name string) string {
	if p, ok := provider.Get(name); ok {
		return p.Tag
	}
	return strings.ToUpper(name)
}

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd provides a parent command for managing stored service credentials.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage service credentials in the system keyring",
}

func init() {
	authCmd.AddCommand(authLoginCmd)

	authLoginCmd.Flags().StringP("credential", "c", "", "The \"user:pass\" credential; prompted for when omitted")
}

// authLoginCmd stores a service credential in the system keyring.
var authLoginCmd = &cobra.Command{
	Use:               "login TAG",
	Short:             "Store a service credential in the system keyring",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionServiceTags,
	Run: func(cmd *cobra.Command, args []string) {
		tag := resolveTag(args[0])

		secret := lo.Must(cmd.Flags().GetString("credential"))
		if secret == "" {
			var username string
			handleErr(survey.AskOne(&survey.Input{
				Message: fmt.Sprintf("Username for %s:", tag),
			}, &username, survey.WithValidator(survey.Required)))

			var password string
			handleErr(survey.AskOne(&survey.Password{
				Message: fmt.Sprintf("Password for %s:", tag),
			}, &password, survey.WithValidator(survey.Required)))

			secret = username + ":" + password
		}

		cred, err := credential.Parse(secret)
		handleErr(err)

		handleErr(auth.Set(tag, secret))
		fmt.Printf("%s stored credential for %s as %s\n",
			icon.Get(icon.Success),
			style.Fg(color.Yellow)(tag),
			cred,
		)
	},
}

func init() {
	authCmd.AddCommand(authLogoutCmd)
}

// authLogoutCmd removes a service credential from the system keyring.
var authLogoutCmd = &cobra.Command{
	Use:               "logout TAG",
	Short:             "Remove a service credential from the system keyring",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionServiceTags,
	Run: func(cmd *cobra.Command, args []string) {
		tag := resolveTag(args[0])

		err := auth.Delete(tag)
		if auth.IsNotFound(err) {
			fmt.Printf("%s no credential stored for %s\n", icon.Get(icon.Question), tag)
			return
		}
		handleErr(err)

		fmt.Printf("%s removed credential for %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(tag))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

// authStatusCmd reports which registered services have a stored credential.
var authStatusCmd = &cobra.Command{
	Use:               "status [TAG]",
	Short:             "Report which services have a stored credential",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionServiceTags,
	Run: func(cmd *cobra.Command, args []string) {
		providers := provider.All()
		if len(args) == 1 {
			tag := resolveTag(args[0])
			providers = lo.Filter(providers, func(p *provider.Provider, _ int) bool {
				return p.Tag == tag
			})
			if len(providers) == 0 {
				providers = []*provider.Provider{{Tag: tag}}
			}
		}

		for _, p := range providers {
			if c, ok := credential.Get(p.Tag).Get(); ok {
				fmt.Printf("%s %s %s\n", icon.Get(icon.Success), p.Tag, style.Faint(c.String()))
			} else {
				fmt.Printf("%s %s %s\n", icon.Get(icon.Fail), p.Tag, style.Faint("no credential"))
			}
		}
	},
}
