// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// Config is an App's configuration as read from TOML:
//
//	[keys]
//	quit = ["Ctrl-Q"]
//	focus_next = ["Tab"]
//	focus_prev = ["Backtab"]
//	next_window = ["F6"]
//	prev_window = ["Shift-F6"]
//
//	[loop]
//	max_wait = "0s"
//
//	[screen]
//	min_width = 0
//	min_height = 0
//
// Key names are tcell's key names optionally prefixed by modifiers,
// e.g. "Alt-Enter", or single runes.
type Config struct {
	Keys   KeysConfig   `toml:"keys"`
	Loop   LoopConfig   `toml:"loop"`
	Screen ScreenConfig `toml:"screen"`
}

// KeysConfig maps features to key names.
type KeysConfig struct {
	Quit       []string `toml:"quit"`
	FocusNext  []string `toml:"focus_next"`
	FocusPrev  []string `toml:"focus_prev"`
	NextWindow []string `toml:"next_window"`
	PrevWindow []string `toml:"prev_window"`
}

// LoopConfig configures the loop.  MaxWait bounds a blocking input
// wait; zero doesn't bound it.
type LoopConfig struct {
	MaxWait Duration `toml:"max_wait"`
}

// ScreenConfig defines the minimal screen size, see App.SetMin.
type ScreenConfig struct {
	MinWidth  int `toml:"min_width"`
	MinHeight int `toml:"min_height"`
}

// Duration is a time.Duration which is read from and written to TOML
// as string, e.g. "250ms".
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration of DefaultFeatures without
// loop and screen constraints.
func DefaultConfig() *Config {
	return &Config{Keys: KeysConfig{
		Quit:       []string{"Ctrl-Q"},
		FocusNext:  []string{"Tab"},
		FocusPrev:  []string{"Backtab"},
		NextWindow: []string{"F6"},
		PrevWindow: []string{"Shift-F6"},
	}}
}

// ParseConfig reads given TOML over the default configuration, i.e.
// features without keys in given TOML keep their default keys.  It
// fails with ErrConfig for invalid TOML, unknown fields or unknown key
// names.
func ParseConfig(b []byte) (*Config, error) {
	parsed := Config{}
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&parsed); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, fmt.Errorf("%w: %d:%d: %v", ErrConfig, row, col,
				err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	cfg := DefaultConfig()
	for _, kk := range []struct{ dst, src *[]string }{
		{&cfg.Keys.Quit, &parsed.Keys.Quit},
		{&cfg.Keys.FocusNext, &parsed.Keys.FocusNext},
		{&cfg.Keys.FocusPrev, &parsed.Keys.FocusPrev},
		{&cfg.Keys.NextWindow, &parsed.Keys.NextWindow},
		{&cfg.Keys.PrevWindow, &parsed.Keys.PrevWindow},
	} {
		if *kk.src != nil {
			*kk.dst = *kk.src
		}
	}
	cfg.Loop, cfg.Screen = parsed.Loop, parsed.Screen
	if _, err := cfg.Features(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig parses the TOML file at given path, see ParseConfig.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return ParseConfig(b)
}

// Marshal returns the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Features maps the configured key names to features.  It fails with
// ErrConfig for an unknown key name.
func (c *Config) Features() (*Features, error) {
	ff := NewFeatures()
	for f, nn := range map[Feature][]string{
		FtQuit:       c.Keys.Quit,
		FtFocusNext:  c.Keys.FocusNext,
		FtFocusPrev:  c.Keys.FocusPrev,
		FtNextWindow: c.Keys.NextWindow,
		FtPrevWindow: c.Keys.PrevWindow,
	} {
		for _, n := range nn {
			r, k, m, err := ParseKey(n)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrConfig, f, err)
			}
			ff.Add(f, r, k, m)
		}
	}
	return ff, nil
}

var keysByName = func() map[string]tcell.Key {
	kk := map[string]tcell.Key{}
	for k, n := range tcell.KeyNames {
		kk[strings.ToLower(n)] = k
	}
	return kk
}()

var modPrefixes = []struct {
	prefix string
	mod    tcell.ModMask
}{
	{"shift-", tcell.ModShift},
	{"alt-", tcell.ModAlt},
	{"meta-", tcell.ModMeta},
	{"ctrl-", tcell.ModCtrl},
}

// ParseKey maps a key name like "Tab", "Ctrl-Q", "Shift-F6" or a single
// rune like "q" to a rune respectively a key and its modifiers.  A rune
// is returned with tcell.KeyRune.
func ParseKey(name string) (rune, tcell.Key, tcell.ModMask, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return r, tcell.KeyRune, tcell.ModNone, nil
	}
	lower := strings.ToLower(name)
	if k, ok := keysByName[lower]; ok {
		return 0, k, tcell.ModNone, nil
	}
	m := tcell.ModNone
	for again := true; again; {
		again = false
		for _, p := range modPrefixes {
			if strings.HasPrefix(lower, p.prefix) {
				lower, m, again = lower[len(p.prefix):], m|p.mod, true
			}
		}
	}
	if k, ok := keysByName[lower]; ok {
		return 0, k, m, nil
	}
	if r, n := utf8.DecodeRuneInString(lower); n == len(lower) &&
		m&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
		return 0, tcell.KeyCtrlA + tcell.Key(unicode.ToLower(r)-'a'),
			m &^ tcell.ModCtrl, nil
	}
	return 0, 0, 0, fmt.Errorf("unknown key name %q", name)
}
