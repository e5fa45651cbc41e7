// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser opens entry links in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// start launches cmd without waiting; replaced in tests.
var start = func(cmd *exec.Cmd) error { return cmd.Start() }

// Validate rejects anything but an absolute http or https URL.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open URL without a host: %q", rawURL)
	}
	return nil
}

// Open launches the platform's URL handler for rawURL.
func Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	return start(command(runtime.GOOS, rawURL))
}

func command(goos, rawURL string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		// rundll32 avoids cmd /c start and its shell interpretation.
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.Command("xdg-open", rawURL)
	}
}

// Func adapts Open to the opener interface used by the watch session.
type Func func(rawURL string) error

// Open calls f.
func (f Func) Open(rawURL string) error { return f(rawURL) }

// Default opens links with the system browser.
var Default = Func(Open)
