package config

// CreateConfig contains the defaults for the create command from the [create] section.
//
//	[create]
//	format = zstd
//	level = 19
//	concurrency = 4
//	keep = true
type CreateConfig struct {
	// Format is the codec name used when the archive's extension does not imply one.
	Format      string
	Level       int
	Concurrency int
	// Keep will never overwrite an existing archive if true.
	Keep bool
}

// ForCreate returns configuration for the create command.
func (l *Loader) ForCreate() (c CreateConfig) {
	sec := l.section("create")
	if sec == nil {
		return c
	}

	c.Format = sec.Key("format").String()
	c.Level = sec.Key("level").MustInt(0)
	c.Concurrency = sec.Key("concurrency").MustInt(0)
	c.Keep = sec.Key("keep").MustBool(false)

	return
}

// ForCreate calls Loader.ForCreate on the DefaultLoader instance.
func ForCreate() CreateConfig {
	return DefaultLoader.ForCreate()
}

// ExtractConfig contains the defaults for the extract and list commands from the [extract] section.
//
//	[extract]
//	directory = out
//	progress = true
type ExtractConfig struct {
	Directory string
	Progress  bool
}

// ForExtract returns configuration for the extract and list commands.
func (l *Loader) ForExtract() (c ExtractConfig) {
	sec := l.section("extract")
	if sec == nil {
		return c
	}

	c.Directory = sec.Key("directory").String()
	c.Progress = sec.Key("progress").MustBool(false)

	return
}

// ForExtract calls Loader.ForExtract on the DefaultLoader instance.
func ForExtract() ExtractConfig {
	return DefaultLoader.ForExtract()
}
