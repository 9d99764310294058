// Package provider manages the registry of built-in and custom service integrations.
package provider

import (
	"fmt"
	"path/filepath"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/pflag"
	"github.com/strand-dl/strand/filesystem"
	"github.com/strand-dl/strand/provider/custom"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/util"
	"github.com/strand-dl/strand/where"
)

// CustomServiceExtension is the filename extension of scripted services.
const CustomServiceExtension = ".lua"

// Params carries the CLI arguments a service is constructed with.
type Params struct {
	// Title is the positional TITLE argument.
	Title string
	// Flags holds the parsed service-specific flags, nil when the service
	// registered none.
	Flags *pflag.FlagSet
}

// Provider represents one registered service integration.
type Provider struct {
	// Tag is the cased service tag, e.g. "EXMP".
	Tag string
	// Aliases are lowercase alternative names. The tag itself is not listed.
	Aliases []string
	// Geofence lists the regions the service is reachable from, empty when
	// unrestricted. Informational; the host does not proxy automatically.
	Geofence []string
	// ShortHelp is the service homepage, shown in command listings.
	ShortHelp string
	// Help is the long-form description shown on --help.
	Help string
	// IsCustom marks Lua-scripted services.
	IsCustom bool
	// SetupFlags registers service-specific flags, optional.
	SetupFlags func(*pflag.FlagSet)
	// New constructs the service from parsed arguments.
	New func(params Params) (service.Service, error)
}

func (p *Provider) String() string {
	return p.Tag
}

// Construct builds the provider's service for one TITLE argument with a
// fresh flag set carrying the provider's registered flag defaults. Entry
// points that resolve the provider only at run time use this instead of
// handing over a command flag set the service's flags were never added to.
func (p *Provider) Construct(titleArg string) (service.Service, error) {
	flags := pflag.NewFlagSet(p.Tag, pflag.ContinueOnError)
	if p.SetupFlags != nil {
		p.SetupFlags(flags)
	}
	return p.New(Params{Title: titleArg, Flags: flags})
}

// builtins is populated by service packages at init time.
var builtins []*Provider

// Register adds a built-in provider to the registry.
// Duplicate tags or aliases are a programming error and panic at init.
func Register(p *Provider) {
	for _, existing := range builtins {
		if strings.EqualFold(existing.Tag, p.Tag) {
			panic(fmt.Sprintf("provider: duplicate service tag %s", p.Tag))
		}
		if len(lo.Intersect(existing.Aliases, p.Aliases)) > 0 {
			panic(fmt.Sprintf("provider: %s and %s share an alias", existing.Tag, p.Tag))
		}
	}
	builtins = append(builtins, p)
}

// Builtins returns the compiled-in providers.
func Builtins() []*Provider {
	return builtins
}

// Customs returns all available Lua service providers.
func Customs() []*Provider {
	providers, _ := CustomProviders()
	return providers
}

// All returns builtin providers followed by custom ones.
func All() []*Provider {
	return append(Builtins(), Customs()...)
}

// Get finds a provider by tag or alias, case-insensitively.
func Get(name string) (*Provider, bool) {
	for _, p := range All() {
		if strings.EqualFold(p.Tag, name) {
			return p, true
		}
		for _, alias := range p.Aliases {
			if strings.EqualFold(alias, name) {
				return p, true
			}
		}
	}
	return nil, false
}

// Suggest returns the registered name closest to an unknown one.
func Suggest(name string) mo.Option[string] {
	var names []string
	for _, p := range All() {
		names = append(names, p.Tag)
		names = append(names, p.Aliases...)
	}
	if len(names) == 0 {
		return mo.None[string]()
	}

	closest := lo.MinBy(names, func(a, b string) bool {
		return levenshtein.Distance(strings.ToLower(name), strings.ToLower(a)) <
			levenshtein.Distance(strings.ToLower(name), strings.ToLower(b))
	})
	return mo.Some(closest)
}

// CustomProviders enumerates the Lua scripts in the services directory.
func CustomProviders() ([]*Provider, error) {
	files, err := filesystem.API().ReadDir(where.Services())
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, f := range files {
		if filepath.Ext(f.Name()) != CustomServiceExtension {
			continue
		}

		if f.Name() == "common.lua" {
			continue
		}

		path := filepath.Join(where.Services(), f.Name())
		tag := strings.ToUpper(util.FileStem(f.Name()))

		providers = append(providers, &Provider{
			Tag:      tag,
			IsCustom: true,
			New: func(params Params) (service.Service, error) {
				return custom.LoadService(tag, path, params.Title)
			},
		})
	}

	return providers, nil
}
