// Package cmd implements the command-line interface for strand.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/strand-dl/strand/cookie"
	"github.com/strand-dl/strand/credential"
	"github.com/strand-dl/strand/filesystem"
	"github.com/strand-dl/strand/inline"
	"github.com/strand-dl/strand/provider"
	"github.com/strand-dl/strand/query"
	"github.com/strand-dl/strand/service"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("service", "s", "", "The service tag or alias to run against")
	inlineCmd.Flags().StringP("query", "q", "", "The title query to resolve through the service")
	inlineCmd.Flags().StringP("title", "t", "", "Criteria for selecting a specific title from the resolved results")
	inlineCmd.Flags().StringP("episodes", "e", "", "Criteria for selecting specific episodes from the chosen series")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("tracks", "T", false, "Execute track resolution and include track listings for selected titles")
	inlineCmd.Flags().BoolP("chapters", "C", false, "Include chapter markers for selected titles")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.MarkFlagRequired("service"))
	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	_ = inlineCmd.RegisterFlagCompletionFunc("service", completionServiceTags)
	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// parseTitlePicker maps a selector string onto an inline title picker.
// Format: "first", "last", a numeric index, or an exact title name.
func parseTitlePicker(description string) (inline.TitlePicker, error) {
	switch description {
	case "first", "last":
		return inline.ParseTitlePicker(description, "")
	}

	if _, err := strconv.ParseUint(description, 10, 16); err == nil {
		return inline.ParseTitlePicker("index", description)
	}

	return inline.ParseTitlePicker("exact", description)
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Title selectors:
  first - first title in the list
  last - last title in the list
  [number] - select title by index (starting from 0)
  [name] - select title by exact name

Episode selectors:
  first - first episode in the list
  last - last episode in the list
  all - all episodes in the list
  s[number] - select episodes by season
  [number] - select episode by number
  [from]-[to] - select episodes by number range
  @[substring]@ - select episodes by name substring

When using the json flag the title selector could be omitted. That way, it will select all titles`,
	PreRun: func(cmd *cobra.Command, args []string) {
		json, _ := cmd.Flags().GetBool("json")

		if !json {
			lo.Must0(cmd.MarkFlagRequired("title"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			name     = lo.Must(cmd.Flags().GetString("service"))
			titleArg = lo.Must(cmd.Flags().GetString("query"))
		)

		p, ok := provider.Get(name)
		if !ok {
			err := fmt.Errorf("unknown service %s", name)
			if suggestion, found := provider.Suggest(name).Get(); found {
				err = fmt.Errorf("unknown service %s, did you mean %s?", name, suggestion)
			}
			handleErr(err)
		}

		svc, err := p.Construct(titleArg)
		handleErr(err)

		service.ApplySessionCustomization(svc)

		if authenticator, ok := svc.(service.Authenticator); ok {
			cookies, err := cookie.LoadFile(svc.Tag())
			handleErr(err)
			handleErr(authenticator.Authenticate(cmd.Context(), cookies, credential.Get(svc.Tag())))
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		titleFlag := lo.Must(cmd.Flags().GetString("title"))
		titlePicker := mo.None[inline.TitlePicker]()
		if titleFlag != "" {
			fn, err := parseTitlePicker(titleFlag)
			handleErr(err)
			titlePicker = mo.Some(fn)
		}

		episodeFlag := lo.Must(cmd.Flags().GetString("episodes"))
		episodesFilter := mo.None[inline.EpisodesFilter]()
		if episodeFlag != "" {
			fn, err := inline.ParseEpisodesFilter(episodeFlag)
			handleErr(err)
			episodesFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Out:            writer,
			Service:        svc,
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			Query:          titleArg,
			TitlePicker:    titlePicker,
			EpisodesFilter: episodesFilter,
			Tracks:         lo.Must(cmd.Flags().GetBool("tracks")),
			Chapters:       lo.Must(cmd.Flags().GetBool("chapters")),
		}

		handleErr(inline.Run(cmd.Context(), options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
	inlineSchemaCmd.SetOut(os.Stdout)
}

// inlineSchemaCmd generates the JSON schema for structured inline mode output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		schema, err := inline.Schema()
		handleErr(err)

		cmd.Println(string(schema))
	},
}
