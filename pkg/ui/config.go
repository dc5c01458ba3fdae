package ui

import (
	"fmt"

	"github.com/macropower/vscroll/pkg/keys"
)

// Config configures the interactive workspace.
type Config struct {
	// EnableMouse enables scrolling with the mouse wheel.
	EnableMouse *bool `json:"enableMouse,omitempty" jsonschema:"title=Enable Mouse"`
	// KeyBinds overrides the default key bindings.
	KeyBinds *KeyBinds `json:"keybinds,omitempty" jsonschema:"title=Key Binds"`
}

// NewConfig returns a [Config] with default values.
func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.EnableMouse == nil {
		enable := true
		c.EnableMouse = &enable
	}

	if c.KeyBinds == nil {
		c.KeyBinds = &KeyBinds{}
	}

	c.KeyBinds.EnsureDefaults()
}

// Validate checks the key bindings for duplicates.
func (c *Config) Validate() error {
	if c.KeyBinds == nil {
		return nil
	}

	return c.KeyBinds.Validate()
}

// KeyBinds are the key bindings of the workspace.
type KeyBinds struct {
	Quit *keys.KeyBind `json:"quit,omitempty" jsonschema:"title=Quit"`
	Help *keys.KeyBind `json:"help,omitempty" jsonschema:"title=Toggle Help"`

	Up        *keys.KeyBind `json:"up,omitempty"        jsonschema:"title=Row Up"`
	Down      *keys.KeyBind `json:"down,omitempty"      jsonschema:"title=Row Down"`
	Left      *keys.KeyBind `json:"left,omitempty"      jsonschema:"title=Cell Left"`
	Right     *keys.KeyBind `json:"right,omitempty"     jsonschema:"title=Cell Right"`
	PageUp    *keys.KeyBind `json:"pageUp,omitempty"    jsonschema:"title=Page Up"`
	PageDown  *keys.KeyBind `json:"pageDown,omitempty"  jsonschema:"title=Page Down"`
	PageLeft  *keys.KeyBind `json:"pageLeft,omitempty"  jsonschema:"title=Page Left"`
	PageRight *keys.KeyBind `json:"pageRight,omitempty" jsonschema:"title=Page Right"`
	Home      *keys.KeyBind `json:"home,omitempty"      jsonschema:"title=Go To Start"`
	End       *keys.KeyBind `json:"end,omitempty"       jsonschema:"title=Go To End"`

	Copy *keys.KeyBind `json:"copy,omitempty" jsonschema:"title=Copy Windows"`
}

// EnsureDefaults fills unset bindings.
func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Quit, keys.NewBind("quit", keys.New("q")))
	kb.Quit.AddKey(keys.New("ctrl+c", keys.WithAlias("⌃c"), keys.Hidden()))

	keys.SetDefaultBind(&kb.Help, keys.NewBind("toggle help", keys.New("?")))

	keys.SetDefaultBind(&kb.Up, keys.NewBind("row up",
		keys.New("up", keys.WithAlias("↑")), keys.New("k")))
	keys.SetDefaultBind(&kb.Down, keys.NewBind("row down",
		keys.New("down", keys.WithAlias("↓")), keys.New("j")))
	keys.SetDefaultBind(&kb.Left, keys.NewBind("cell left",
		keys.New("left", keys.WithAlias("←")), keys.New("h")))
	keys.SetDefaultBind(&kb.Right, keys.NewBind("cell right",
		keys.New("right", keys.WithAlias("→")), keys.New("l")))
	keys.SetDefaultBind(&kb.PageUp, keys.NewBind("page up",
		keys.New("pgup"), keys.New("b")))
	keys.SetDefaultBind(&kb.PageDown, keys.NewBind("page down",
		keys.New("pgdown", keys.WithAlias("pgdn")), keys.New("f"), keys.New(" ", keys.WithAlias("space"))))
	keys.SetDefaultBind(&kb.PageLeft, keys.NewBind("page left",
		keys.New("shift+tab"), keys.New("H")))
	keys.SetDefaultBind(&kb.PageRight, keys.NewBind("page right",
		keys.New("tab"), keys.New("L")))
	keys.SetDefaultBind(&kb.Home, keys.NewBind("go to start",
		keys.New("home"), keys.New("g")))
	keys.SetDefaultBind(&kb.End, keys.NewBind("go to end",
		keys.New("end"), keys.New("G")))

	keys.SetDefaultBind(&kb.Copy, keys.NewBind("copy windows", keys.New("y")))
}

// Navigation returns the scrolling bindings.
func (kb *KeyBinds) Navigation() []keys.KeyBind {
	return derefBinds(
		kb.Up, kb.Down, kb.Left, kb.Right,
		kb.PageUp, kb.PageDown, kb.PageLeft, kb.PageRight,
		kb.Home, kb.End,
	)
}

// Actions returns the non-scrolling bindings.
func (kb *KeyBinds) Actions() []keys.KeyBind {
	return derefBinds(kb.Copy, kb.Help, kb.Quit)
}

// Validate checks that no key is bound twice.
func (kb *KeyBinds) Validate() error {
	err := keys.ValidateBinds(kb.Navigation(), kb.Actions())
	if err != nil {
		return fmt.Errorf("key binds: %w", err)
	}

	return nil
}

func derefBinds(kbs ...*keys.KeyBind) []keys.KeyBind {
	out := make([]keys.KeyBind, 0, len(kbs))
	for _, kb := range kbs {
		if kb != nil {
			out = append(out, *kb)
		}
	}

	return out
}
