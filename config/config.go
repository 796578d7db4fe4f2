package config

// Config is the root configuration of the tagset tool.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Corpus CorpusConfig `yaml:"corpus"`
	Vocab  VocabConfig  `yaml:"vocab"`
	Encode EncodeConfig `yaml:"encode"`
	Output OutputConfig `yaml:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"TAGSET_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"TAGSET_LOG_FORMAT" env-default:"text"`
}

// CorpusConfig locates the corpus store: a directory of .conllu files or a
// sqlite database file.
type CorpusConfig struct {
	Path string `yaml:"path" env:"TAGSET_CORPUS_PATH" env-default:"."`

	// drop sentences with malformed token rows instead of failing
	SkipMalformed bool `yaml:"skip_malformed" env:"TAGSET_CORPUS_SKIP_MALFORMED" env-default:"false"`
}

// VocabConfig locates the bbolt vocabulary store.
type VocabConfig struct {
	Path string `yaml:"path" env:"TAGSET_VOCAB_PATH" env-default:"vocab.db"`
}

// EncodeConfig holds feature encoding settings.
type EncodeConfig struct {
	Workers       int    `yaml:"workers"         env:"TAGSET_ENCODE_WORKERS"         env-default:"4"`
	Unknown       string `yaml:"unknown"         env:"TAGSET_ENCODE_UNKNOWN"         env-default:"fail"`
	MaxDenseBytes int64  `yaml:"max_dense_bytes" env:"TAGSET_ENCODE_MAX_DENSE_BYTES" env-default:"1073741824"`
}

// OutputConfig holds dataset output settings. An empty Path is stdout.
type OutputConfig struct {
	Format string `yaml:"format" env:"TAGSET_OUTPUT_FORMAT" env-default:"csv"`
	Path   string `yaml:"path"   env:"TAGSET_OUTPUT_PATH"`
}
