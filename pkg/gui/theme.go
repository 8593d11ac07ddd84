package gui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Terminal safe color palette is available here
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name      string
	Board     tcell.Color
	Slot      tcell.Color
	PlayerA   tcell.Color
	PlayerB   tcell.Color
	Highlight tcell.Color
	Label     tcell.Color
	Cursor    tcell.Color
}

// ThemeHex is the config file form of a Theme
type ThemeHex struct {
	Name      string `yaml:"name"`
	Board     string `yaml:"board"`
	Slot      string `yaml:"slot"`
	PlayerA   string `yaml:"player_a"`
	PlayerB   string `yaml:"player_b"`
	Highlight string `yaml:"highlight"`
	Label     string `yaml:"label"`
	Cursor    string `yaml:"cursor"`
}

// fmtHex returns "default" for ColorDefault so it survives a round trip
// instead of being read back as black
func fmtHex(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "default"
	}
	return fmt.Sprintf("#%06x", c.Hex())
}

func parseColor(s string) tcell.Color {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return tcell.ColorDefault
	}
	return tcell.GetColor(strings.ToLower(s))
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		Name:      t.Name,
		Board:     fmtHex(t.Board),
		Slot:      fmtHex(t.Slot),
		PlayerA:   fmtHex(t.PlayerA),
		PlayerB:   fmtHex(t.PlayerB),
		Highlight: fmtHex(t.Highlight),
		Label:     fmtHex(t.Label),
		Cursor:    fmtHex(t.Cursor),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		Name:      t.Name,
		Board:     parseColor(t.Board),
		Slot:      parseColor(t.Slot),
		PlayerA:   parseColor(t.PlayerA),
		PlayerB:   parseColor(t.PlayerB),
		Highlight: parseColor(t.Highlight),
		Label:     parseColor(t.Label),
		Cursor:    parseColor(t.Cursor),
	}
}

// ThemeClassic is the default: blue board, white holes, yellow and red discs
var ThemeClassic = Theme{
	Name:      "classic",
	Board:     tcell.NewRGBColor(51, 102, 204),
	Slot:      tcell.ColorWhite,
	PlayerA:   tcell.ColorYellow,
	PlayerB:   tcell.ColorIndianRed,
	Highlight: tcell.ColorLightGreen,
	Label:     tcell.Color247,
	Cursor:    tcell.Color226,
}

var ThemeMidnight = Theme{
	Name:      "midnight",
	Board:     tcell.Color236,
	Slot:      tcell.Color240,
	PlayerA:   tcell.Color220,
	PlayerB:   tcell.Color167,
	Highlight: tcell.Color122,
	Label:     tcell.Color247,
	Cursor:    tcell.Color45,
}

var builtinThemes = []Theme{ThemeClassic, ThemeMidnight}

type themeFile struct {
	Themes []ThemeHex `yaml:"themes"`
}

// LoadThemes reads the themes list from a YAML config file
func LoadThemes(path string) ([]ThemeHex, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	var tf themeFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("theme: parse %s: %w", path, err)
	}
	return tf.Themes, nil
}

// ImportTheme returns the theme called want. Themes from the config file
// override built-in ones with the same name.
func ImportTheme(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	for _, t := range builtinThemes {
		if t.Name == want {
			return t, nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}
