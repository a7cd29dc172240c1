package config

// Config is the contents of a .liveline.yaml file after defaults,
// environment and flags have been applied.
type Config struct {
	// Width is used when the terminal size can't be queried.
	Width int `yaml:"width" mapstructure:"width"`

	// Margin is the number of columns kept free at the right edge.
	Margin int `yaml:"margin" mapstructure:"margin"`

	// Ellipsis marks truncated status lines. Empty disables it.
	Ellipsis string `yaml:"ellipsis" mapstructure:"ellipsis"`

	// Summary prints a one-line summary when the command succeeds.
	Summary bool `yaml:"summary" mapstructure:"summary"`

	// ForceColor asks the child to emit color even though its output is a pipe.
	ForceColor bool `yaml:"force_color" mapstructure:"force_color"`

	// HideCursor hides the cursor while the command runs.
	HideCursor bool `yaml:"hide_cursor" mapstructure:"hide_cursor"`

	// LabelMax caps the length of a derived label, in runes.
	LabelMax int `yaml:"label_max" mapstructure:"label_max"`
}

// Config keys, shared by the file, the environment and flag bindings.
const (
	KeyWidth      = "width"
	KeyMargin     = "margin"
	KeyEllipsis   = "ellipsis"
	KeySummary    = "summary"
	KeyForceColor = "force_color"
	KeyHideCursor = "hide_cursor"
	KeyLabelMax   = "label_max"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Width:      80,
		Margin:     0,
		Ellipsis:   "",
		Summary:    false,
		ForceColor: true,
		HideCursor: true,
		LabelMax:   32,
	}
}
