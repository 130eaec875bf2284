package config

// Sheaffile represents the structure of the sheaf.yaml configuration file.
// Pointer fields distinguish an explicit false from an omitted key.
type Sheaffile struct {
	Version      string      `yaml:"version"`
	Root         string      `yaml:"root"`
	ConfigSource string      `yaml:"config_source"`
	Cache        CacheDTO    `yaml:"cache"`
	Resolver     ResolverDTO `yaml:"resolver"`
	Defaults     DefaultsDTO `yaml:"defaults"`
	Server       ServerDTO   `yaml:"server"`
	Template     TemplateDTO `yaml:"template"`
	Log          LogDTO      `yaml:"log"`
}

// CacheDTO configures the artifact cache.
type CacheDTO struct {
	Dir string `yaml:"dir"`
	Key string `yaml:"key"`
}

// ResolverDTO configures selector resolution.
type ResolverDTO struct {
	Policy string `yaml:"policy"`
}

// DefaultsDTO holds the initial aggregation options.
type DefaultsDTO struct {
	IncludeComponentNames *bool `yaml:"include_component_names"`
	Minify                *bool `yaml:"minify"`
}

// ServerDTO configures the HTTP server.
type ServerDTO struct {
	Addr     string `yaml:"addr"`
	Compress *bool  `yaml:"compress"`
	Watch    *bool  `yaml:"watch"`
}

// TemplateDTO configures fragment template delimiters.
type TemplateDTO struct {
	LeftDelim  string `yaml:"left_delim"`
	RightDelim string `yaml:"right_delim"`
}

// LogDTO configures log output.
type LogDTO struct {
	JSON    *bool `yaml:"json"`
	Verbose *bool `yaml:"verbose"`
}
