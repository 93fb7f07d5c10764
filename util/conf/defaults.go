package conf

// DefaultConfig maps dotted config keys to their default values.
type DefaultConfig map[string]any

// JoinDefaults merges the given defaults into a single map. Later maps
// take precedence.
func JoinDefaults(defaults ...DefaultConfig) DefaultConfig {
	joined := DefaultConfig{}
	for _, d := range defaults {
		for key, val := range d {
			joined[key] = val
		}
	}

	return joined
}
