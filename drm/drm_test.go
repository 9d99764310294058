package drm

import (
	"encoding/base64"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWidevine(t *testing.T) {
	Convey("Given a widevine descriptor", t, func() {
		pssh := base64.StdEncoding.EncodeToString([]byte("pssh-box"))

		Convey("A valid descriptor passes validation", func() {
			w := &Widevine{PSSH: pssh, KID: "0123456789abcdef0123456789abcdef"}
			So(w.Validate(), ShouldBeNil)
		})

		Convey("Dashed KIDs are tolerated", func() {
			w := &Widevine{PSSH: pssh, KID: "01234567-89ab-cdef-0123-456789abcdef"}
			kid, err := w.KIDBytes()
			So(err, ShouldBeNil)
			So(kid, ShouldHaveLength, 16)
		})

		Convey("An empty PSSH fails", func() {
			w := &Widevine{}
			So(w.Validate(), ShouldNotBeNil)
		})

		Convey("A short KID fails", func() {
			w := &Widevine{PSSH: pssh, KID: "abcd"}
			So(w.Validate(), ShouldNotBeNil)
		})
	})
}

func TestNormalizePayload(t *testing.T) {
	Convey("NormalizePayload", t, func() {
		raw := []byte{0x08, 0x01, 0x12, 0x03, 0xff, 0xfe, 0xfd}

		Convey("Base64 payloads are decoded", func() {
			encoded := []byte(base64.StdEncoding.EncodeToString(raw))
			out, err := NormalizePayload(encoded)
			So(err, ShouldBeNil)
			So(out, ShouldResemble, raw)
		})

		Convey("Raw payloads pass through", func() {
			out, err := NormalizePayload(raw)
			So(err, ShouldBeNil)
			So(out, ShouldResemble, raw)
		})

		Convey("Raw payloads are never run through the decoder", func() {
			// A message whose tail happens to be valid base64 must still
			// pass through untouched once any non-text byte is present.
			mixed := append([]byte{0x08, 0x04}, []byte("QUJDRA==")...)
			out, err := NormalizePayload(mixed)
			So(err, ShouldBeNil)
			So(out, ShouldResemble, mixed)
		})

		Convey("Empty payloads error", func() {
			_, err := NormalizePayload(nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestIsCommonCertificate(t *testing.T) {
	Convey("IsCommonCertificate", t, func() {
		So(IsCommonCertificate([]byte("....license.google.com....")), ShouldBeTrue)
		So(IsCommonCertificate([]byte("service specific cert")), ShouldBeFalse)
	})
}
