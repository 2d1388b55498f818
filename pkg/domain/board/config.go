package board

// Config describes a configured board plugin: the executable to load and the
// settings handed to its Init. Sensitive values such as API tokens pass
// through untouched; credential management is the board's concern.
type Config struct {
	Binary string            `json:"binary" yaml:"binary"`
	Config map[string]string `json:"config" yaml:"config"`
}
