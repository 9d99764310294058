// Package cmd implements the command-line interface for strand.
package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/strand-dl/strand/color"
	"github.com/strand-dl/strand/cookie"
	"github.com/strand-dl/strand/credential"
	"github.com/strand-dl/strand/drm"
	"github.com/strand-dl/strand/history"
	"github.com/strand-dl/strand/icon"
	"github.com/strand-dl/strand/internal/cache"
	"github.com/strand-dl/strand/key"
	"github.com/strand-dl/strand/log"
	"github.com/strand-dl/strand/provider"
	"github.com/strand-dl/strand/query"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/style"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/track"
	"github.com/strand-dl/strand/tui"
)

func init() {
	rootCmd.AddCommand(dlCmd)

	dlCmd.PersistentFlags().IntP("quality", "Q", 0, "Preferred maximum video height, e.g. 1080")
	dlCmd.PersistentFlags().StringP("language", "L", "", "Preferred audio/subtitle language (BCP-47)")
	dlCmd.PersistentFlags().BoolP("first", "f", false, "Skip the picker and take the first resolved title")
	lo.Must0(viper.BindPFlag(key.DownloadsQuality, dlCmd.PersistentFlags().Lookup("quality")))
	lo.Must0(viper.BindPFlag(key.DownloadsLanguage, dlCmd.PersistentFlags().Lookup("language")))
}

// dlCmd is the parent of one subcommand per registered service.
var dlCmd = &cobra.Command{
	Use:   "dl",
	Short: "Acquire titles from a service",
	Long: `Acquire titles from a registered service.

Each service is exposed as a subcommand named by its tag; aliases work too.
The TITLE argument is whatever the service resolves: a name, a URL, an ID.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		// An unknown tag lands here instead of a subcommand.
		err := fmt.Errorf("unknown service %s", style.Fg(color.Red)(args[0]))
		if closest, ok := provider.Suggest(args[0]).Get(); ok {
			err = fmt.Errorf("%w, did you mean %s?", err, style.Fg(color.Yellow)(closest))
		}
		handleErr(err)
	},
}

// buildServiceCommands attaches one dl subcommand per registered provider.
func buildServiceCommands() {
	for _, p := range provider.All() {
		dlCmd.AddCommand(newServiceCommand(p))
	}
}

func newServiceCommand(p *provider.Provider) *cobra.Command {
	short := p.ShortHelp
	if short == "" {
		if p.IsCustom {
			short = "Lua service"
		} else {
			short = "Built-in service"
		}
	}

	cmd := &cobra.Command{
		Use:     p.Tag + " TITLE",
		Aliases: p.Aliases,
		Short:   short,
		Long:    p.Help,
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			handleErr(acquire(cmd, p, strings.Join(args, " ")))
		},
	}

	if p.SetupFlags != nil {
		p.SetupFlags(cmd.Flags())
	}

	return cmd
}

// acquire drives the pipeline: construct, authenticate, resolve, pick,
// list tracks and chapters, print the plan, record history.
func acquire(cmd *cobra.Command, p *provider.Provider, titleArg string) error {
	ctx := cmd.Context()

	if viper.GetBool(key.SearchShowQuerySuggestions) {
		_ = query.Remember(titleArg, 1)
	}

	svc, err := p.New(provider.Params{Title: titleArg, Flags: cmd.Flags()})
	if err != nil {
		return err
	}

	service.ApplySessionCustomization(svc)

	if authenticator, ok := svc.(service.Authenticator); ok {
		cookies, err := cookie.LoadFile(svc.Tag())
		if err != nil {
			return err
		}
		if err := authenticator.Authenticate(ctx, cookies, credential.Get(svc.Tag())); err != nil {
			return err
		}
	}

	if len(p.Geofence) > 0 && viper.GetString(key.NetworkProxy) == "" {
		log.Warnf("%s is only available in %s and no proxy is configured",
			svc.Tag(), strings.Join(p.Geofence, ", "))
	}

	titles, err := svc.GetTitles(ctx)
	if err != nil {
		return err
	}
	if titles.Empty() {
		fmt.Printf("%s nothing found for %s\n", icon.Get(icon.Question), style.Bold(titleArg))
		return nil
	}

	selected, err := pickTitles(cmd, titles, titleArg)
	if err != nil {
		return err
	}

	for _, t := range selected {
		if err := planTitle(cmd, svc, t); err != nil {
			return err
		}
	}

	return nil
}

func pickTitles(cmd *cobra.Command, titles *title.Titles, titleArg string) ([]title.Title, error) {
	first := lo.Must(cmd.Flags().GetBool("first"))

	if len(titles.Movies) > 0 {
		if first {
			return []title.Title{titles.Movies[0]}, nil
		}
		picked, err := tui.SelectTitle(titleArg, titles.All())
		if err != nil {
			return nil, err
		}
		return []title.Title{picked}, nil
	}

	if first {
		return []title.Title{titles.Series[0]}, nil
	}

	episodes, err := tui.SelectEpisodes(titleArg, titles.Series)
	if err != nil {
		return nil, err
	}
	return lo.Map(episodes, func(e *title.Episode, _ int) title.Title {
		return title.Title(e)
	}), nil
}

func planTitle(cmd *cobra.Command, svc service.Service, t title.Title) error {
	ctx := cmd.Context()

	tracks, err := svc.GetTracks(ctx, t)
	if err != nil {
		return err
	}

	chapters, err := svc.GetChapters(ctx, t)
	if err != nil {
		return err
	}
	if chapters == nil {
		return fmt.Errorf("%s returned nil chapters for %s", svc.Tag(), t.TitleName())
	}
	if err := chapters.Validate(); err != nil {
		return err
	}
	chapters.Numbered()

	plan := selectTracks(tracks)
	if len(plan) == 0 {
		return fmt.Errorf("%s returned no usable tracks for %s", svc.Tag(), t)
	}

	fmt.Printf("%s %s\n", icon.Get(icon.Download), style.Bold(t.String()))
	for _, tr := range plan {
		fmt.Printf("  %s\n", tr)
	}
	if len(chapters) > 0 {
		fmt.Printf("  %d chapters\n", len(chapters))
	}

	protected := lo.SomeBy(plan, func(tr *track.Track) bool {
		return tr.Protected()
	})
	if protected {
		if err := prefetchCertificate(cmd, svc, t, plan); err != nil {
			return err
		}
	}

	if viper.GetBool(key.HistorySaveOnAcquire) {
		if err := history.Save(svc.Tag(), t, len(plan), protected); err != nil {
			log.Warnf("failed to record history: %v", err)
		}
	}

	return nil
}

// selectTracks applies the configured quality and language preferences.
func selectTracks(tracks *track.Tracks) []*track.Track {
	var plan []*track.Track

	maxHeight := viper.GetInt(key.DownloadsQuality)
	if maxHeight == 0 {
		maxHeight = 2160
	}
	if video, ok := tracks.SelectVideo(maxHeight); ok {
		plan = append(plan, video)
	}

	language := viper.GetString(key.DownloadsLanguage)
	plan = append(plan, track.ByLanguage(tracks.Audios, language)...)
	plan = append(plan, track.ByLanguage(tracks.Subtitles, language)...)

	return plan
}

// prefetchCertificate exercises the certificate hook ahead of licensing so a
// service-specific certificate is cached before any challenge is generated.
func prefetchCertificate(cmd *cobra.Command, svc service.Service, t title.Title, plan []*track.Track) error {
	tr, ok := lo.Find(plan, func(tr *track.Track) bool {
		return tr.Protected()
	})
	if !ok {
		return nil
	}

	cacheKey := cache.GenerateKey("certificate", svc.Tag())
	if viper.GetBool(key.DRMCacheCertificates) {
		var cached []byte
		if cache.Read(cacheKey, &cached) {
			return nil
		}
	}

	payload, err := svc.GetWidevineServiceCertificate(cmd.Context(), &service.ChallengeRequest{
		Title: t,
		Track: tr,
	})
	if err != nil {
		return err
	}
	if payload == nil {
		// The service relies on the common certificate, requested in-band.
		return nil
	}

	cert, err := drm.NormalizePayload(payload)
	if err != nil {
		return err
	}
	if drm.IsCommonCertificate(cert) {
		log.Infof("%s uses the common license certificate", svc.Tag())
	}

	if viper.GetBool(key.DRMCacheCertificates) {
		_ = cache.Write(cacheKey, cert)
	}

	fmt.Printf("  %s service certificate ready (%d bytes)\n", icon.Get(icon.Lock), len(cert))
	return nil
}
