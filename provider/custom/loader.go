// Package custom provides a bridge between the Go core and Lua-based service scripts.
package custom

import (
	"fmt"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/strand-dl/strand/constant"
	"github.com/strand-dl/strand/internal/scraper"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/util"
	lua "github.com/yuin/gopher-lua"
)

// LoadService initializes a service.Service instance by executing and validating a Lua service script.
// The query is the TITLE argument the service resolves in its titles hook.
func LoadService(tag, path, query string) (service.Service, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state) // Injected from wrapper_tls.go

	// Load and compile the Lua script (using cache if available).
	err := scraper.CompileAndRun(state, path)
	if err != nil {
		return nil, err
	}

	name := util.FileStem(path)

	// Validation
	required := []string{
		constant.GetTitlesFn,
		constant.GetTracksFn,
	}

	for _, fn := range required {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	return newLuaService(tag, query, state), nil
}
