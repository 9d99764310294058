// Package cookie loads per-service Netscape cookie files and installs them into HTTP sessions.
package cookie

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/strand-dl/strand/filesystem"
	"github.com/strand-dl/strand/where"
	"golang.org/x/net/publicsuffix"
)

// httpOnlyPrefix marks HttpOnly cookies in exports from some browsers.
const httpOnlyPrefix = "#HttpOnly_"

// ParseNetscape reads cookies from the Netscape "cookies.txt" text format:
// seven tab-separated fields per line, comments starting with '#'.
func ParseNetscape(r io.Reader) ([]*http.Cookie, error) {
	var cookies []*http.Cookie

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(text, httpOnlyPrefix) {
			text = strings.TrimPrefix(text, httpOnlyPrefix)
		} else if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != 7 {
			return nil, fmt.Errorf("cookies: line %d has %d fields, want 7", line, len(fields))
		}

		expires, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cookies: line %d has invalid expiry: %w", line, err)
		}

		c := &http.Cookie{
			Domain: strings.TrimPrefix(fields[0], "."),
			Path:   fields[2],
			Secure: strings.EqualFold(fields[3], "TRUE"),
			Name:   fields[5],
			Value:  fields[6],
		}
		if expires > 0 {
			c.Expires = time.Unix(expires, 0)
		}

		cookies = append(cookies, c)
	}

	return cookies, scanner.Err()
}

// LoadFile reads the cookie file of one service from where.Cookies().
// A missing file is not an error; services without cookies get an empty slice.
func LoadFile(tag string) ([]*http.Cookie, error) {
	path := filepath.Join(where.Cookies(), tag+".txt")

	exists, err := filesystem.API().Exists(path)
	if err != nil || !exists {
		return nil, err
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return nil, fmt.Errorf("cookies: open %s: %w", path, err)
	}
	defer f.Close()

	return ParseNetscape(f)
}

// NewJar builds a cookie jar with public-suffix-aware domain matching.
func NewJar() *cookiejar.Jar {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

// Install places parsed cookies into a jar under their origin domains.
func Install(jar http.CookieJar, cookies []*http.Cookie) {
	byDomain := make(map[string][]*http.Cookie)
	for _, c := range cookies {
		byDomain[c.Domain] = append(byDomain[c.Domain], c)
	}

	for domain, group := range byDomain {
		u := &url.URL{Scheme: "https", Host: domain, Path: "/"}
		jar.SetCookies(u, group)
	}
}
