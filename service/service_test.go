package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/strand-dl/strand/credential"
	"github.com/strand-dl/strand/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestEnvironmentError(t *testing.T) {
	Convey("EnvironmentError", t, func() {
		err := error(&EnvironmentError{Tag: "EXMP", Missing: "credentials", Remedy: "run auth login"})

		Convey("Renders tag, material and remedy", func() {
			So(err.Error(), ShouldEqual, "EXMP requires credentials which are not configured; run auth login")
		})

		Convey("Is matchable with errors.As through wrapping", func() {
			wrapped := errors.Join(errors.New("authenticate"), err)
			var envErr *EnvironmentError
			So(errors.As(wrapped, &envErr), ShouldBeTrue)
			So(envErr.Tag, ShouldEqual, "EXMP")
		})
	})
}

func TestBase(t *testing.T) {
	Convey("Given a service base", t, func() {
		base := NewBase("EXMP")

		Convey("Tag is exposed", func() {
			So(base.Tag(), ShouldEqual, "EXMP")
		})

		Convey("The session has a cookie jar", func() {
			So(base.Session, ShouldNotBeNil)
			So(base.Session.Jar, ShouldNotBeNil)
		})

		Convey("Default Authenticate retains the credential", func() {
			cred := mo.Some(credential.Credential{Username: "u", Password: "p"})
			So(base.Authenticate(context.Background(), nil, cred), ShouldBeNil)
			So(base.Credential.IsPresent(), ShouldBeTrue)
		})

		Convey("RequireCredential raises an EnvironmentError when absent", func() {
			_, err := base.RequireCredential()
			var envErr *EnvironmentError
			So(errors.As(err, &envErr), ShouldBeTrue)
			So(envErr.Missing, ShouldEqual, "credentials")
		})

		Convey("RequireCookies raises an EnvironmentError when empty", func() {
			err := base.RequireCookies(nil)
			var envErr *EnvironmentError
			So(errors.As(err, &envErr), ShouldBeTrue)

			So(base.RequireCookies([]*http.Cookie{{Name: "session"}}), ShouldBeNil)
		})

		Convey("CacheKey is credential-scoped", func() {
			unauthenticated := base.CacheKey("token")
			_ = base.Authenticate(context.Background(), nil, mo.Some(credential.Credential{Username: "u", Password: "p"}))
			So(base.CacheKey("token"), ShouldNotEqual, unauthenticated)
		})
	})
}
