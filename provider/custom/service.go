// Package custom provides a bridge between the Go core and Lua-based service scripts.
package custom

import (
	"fmt"
	"sync"

	"github.com/strand-dl/strand/service"
	lua "github.com/yuin/gopher-lua"
)

// luaService adapts a loaded Lua script to the service contract.
// A single LState is not safe for concurrent use, so every hook call
// holds the state mutex for its duration.
type luaService struct {
	*service.Base

	query string
	state *lua.LState
	mu    sync.Mutex
}

func newLuaService(tag, query string, state *lua.LState) *luaService {
	return &luaService{
		Base:  service.NewBase(tag),
		query: query,
		state: state,
	}
}

// defines reports whether the script declares an optional hook.
func (s *luaService) defines(fn string) bool {
	return s.state.GetGlobal(fn).Type() == lua.LTFunction
}

// call executes a global Lua function safely.
func (s *luaService) call(fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	luaFn := s.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := s.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)

	if err != nil {
		return nil, err
	}

	retval := s.state.Get(-1)
	s.state.Pop(1) // Clean stack

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
