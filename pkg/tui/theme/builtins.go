// ABOUTME: Built-in themes: default, dark, light, monochrome
// ABOUTME: Provides Builtin(name) lookup and BuiltinNames() enumeration

package theme

var builtins = map[string]*Theme{
	"default": {
		Name:    "default",
		Palette: DefaultPalette(),
	},
	"dark": {
		Name: "dark",
		Palette: Palette{
			Prompt: "#c0caf5",
			Cwd:    "#7dcfff",
			Error:  "#f7768e",
			Hint:   "#565f89",
			Banner: "#bb9af7",
		},
	},
	"light": {
		Name: "light",
		Palette: Palette{
			Prompt: "#343b58",
			Cwd:    "#166775",
			Error:  "#8c4351",
			Hint:   "#9699a3",
			Banner: "#5a4a78",
		},
	},
	// monochrome keeps the bold and faint attributes only.
	"monochrome": {
		Name:    "monochrome",
		Palette: Palette{},
	},
}

// DefaultPalette returns the 16-color palette used when no theme is set.
func DefaultPalette() Palette {
	return Palette{
		Prompt: "15",
		Cwd:    "6",
		Error:  "1",
		Hint:   "8",
		Banner: "5",
	}
}

// Builtin returns a built-in theme by name, or nil if unknown.
func Builtin(name string) *Theme {
	return builtins[name]
}

// BuiltinNames returns the names of all built-in themes.
func BuiltinNames() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
