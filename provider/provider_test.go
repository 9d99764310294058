package provider

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/pflag"
	"github.com/strand-dl/strand/filesystem"
	"github.com/strand-dl/strand/service"
	"github.com/strand-dl/strand/where"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestGet(t *testing.T) {
	Convey("Given a registered provider", t, func() {
		builtins = nil
		Register(&Provider{
			Tag:     "EXMP",
			Aliases: []string{"example"},
			New: func(Params) (service.Service, error) {
				return nil, nil
			},
		})

		Convey("When getting it by tag, case should not matter", func() {
			p, ok := Get("exmp")
			So(ok, ShouldBeTrue)
			So(p.Tag, ShouldEqual, "EXMP")
		})

		Convey("When getting it by alias", func() {
			p, ok := Get("Example")
			So(ok, ShouldBeTrue)
			So(p.Tag, ShouldEqual, "EXMP")
		})

		Convey("When trying to get an unknown provider", func() {
			_, ok := Get("kek")
			So(ok, ShouldBeFalse)
		})

		Convey("When registering a duplicate tag", func() {
			So(func() {
				Register(&Provider{Tag: "exmp"})
			}, ShouldPanic)
		})
	})
}

func TestSuggest(t *testing.T) {
	Convey("Given registered providers", t, func() {
		builtins = nil
		Register(&Provider{Tag: "EXMP", Aliases: []string{"example"}})
		Register(&Provider{Tag: "NF"})

		Convey("A near miss should suggest the closest tag", func() {
			suggestion, ok := Suggest("EXMPL").Get()
			So(ok, ShouldBeTrue)
			So(suggestion, ShouldEqual, "EXMP")
		})

		Convey("An alias should be suggestible too", func() {
			suggestion, ok := Suggest("exampel").Get()
			So(ok, ShouldBeTrue)
			So(suggestion, ShouldEqual, "example")
		})
	})
}

func TestConstruct(t *testing.T) {
	Convey("Given a provider with registered flags", t, func() {
		builtins = nil

		type stub struct{ service.Service }
		var gotCodec string
		var gotTitle string

		Register(&Provider{
			Tag: "EXMP",
			SetupFlags: func(flags *pflag.FlagSet) {
				flags.String("vcodec", "h264", "")
			},
			New: func(params Params) (service.Service, error) {
				gotTitle = params.Title
				gotCodec = lo.Must(params.Flags.GetString("vcodec"))
				return &stub{}, nil
			},
		})

		p, ok := Get("EXMP")
		So(ok, ShouldBeTrue)

		Convey("Construct supplies a flag set carrying the flag defaults", func() {
			So(func() { _, _ = p.Construct("some title") }, ShouldNotPanic)
			So(gotTitle, ShouldEqual, "some title")
			So(gotCodec, ShouldEqual, "h264")
		})
	})

	Convey("Given a provider without flags", t, func() {
		builtins = nil
		Register(&Provider{
			Tag: "BARE",
			New: func(params Params) (service.Service, error) {
				return nil, nil
			},
		})

		p, _ := Get("BARE")
		So(func() { _, _ = p.Construct("anything") }, ShouldNotPanic)
	})
}

func TestCustomProviders(t *testing.T) {
	Convey("Given Lua scripts in the services directory", t, func() {
		builtins = nil
		dir := where.Services()
		for _, name := range []string{"mytv.lua", "common.lua", "notes.txt"} {
			So(filesystem.API().WriteFile(filepath.Join(dir, name), []byte("-- stub"), 0o644), ShouldBeNil)
		}

		Convey("Discovery should pick up scripts only, skipping common.lua", func() {
			providers, err := CustomProviders()
			So(err, ShouldBeNil)
			So(providers, ShouldHaveLength, 1)
			So(providers[0].Tag, ShouldEqual, "MYTV")
			So(providers[0].IsCustom, ShouldBeTrue)
		})

		Convey("A custom provider should be gettable by tag", func() {
			p, ok := Get("mytv")
			So(ok, ShouldBeTrue)
			So(p.IsCustom, ShouldBeTrue)
		})
	})
}
