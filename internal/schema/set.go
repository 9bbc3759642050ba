package schema

// Set holds the schemas one verification run needs
type Set struct {
	Marketplace *Schema
	PluginEntry *Schema
	Plugin      *Schema
}

// NewSet compiles all embedded schemas
func NewSet() *Set {
	return &Set{
		Marketplace: Load(Marketplace),
		PluginEntry: Load(PluginEntry),
		Plugin:      Load(Plugin),
	}
}
