package conf

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/termii-notify/smsadmin/util/cliflags"
)

type ParseOptions struct {
	// Cli is the cli.Context from urfave/cli
	Cli *cli.Context

	// CliMap is a map of cli flag names to config keys
	CliMap map[string]string

	// Defaults is a map of default values
	Defaults DefaultConfig

	// EnvPrefix is the prefix for env vars
	EnvPrefix string

	// EnvMap maps env var names, prefix included, to config keys. Names
	// not in the map are lowercased with __ nesting.
	EnvMap map[string]string

	// EnvFile is the name of a dotenv file. A missing file is skipped.
	EnvFile string

	// FileName is the name of the configuration file to load
	FileName string

	// Log is the logger to use
	Log *zap.Logger
}

// Parse loads the config in order of precedence: defaults, json file,
// dotenv file, environment and cli flags.
func Parse[C any](opt ParseOptions) (C, error) {

	var log *zap.Logger
	if opt.Log != nil {
		log = opt.Log
	} else {
		log = zap.NewNop()
	}

	k := koanf.New(".")

	if opt.Defaults != nil {
		k.Load(confmap.Provider(opt.Defaults, "."), nil)
	}

	if opt.FileName != "" {
		if err := k.Load(file.Provider(opt.FileName), json.Parser()); err != nil {
			log.Error("error parsing file",
				zap.Error(err),
				zap.String("file", opt.FileName),
			)
		}
	}

	transformPrefixedEnv := func(s string) string {
		if key, ok := opt.EnvMap[s]; ok {
			return key
		}
		return transformEnv(s, opt.EnvPrefix)
	}

	var config C

	if opt.EnvFile != "" {
		if _, err := os.Stat(opt.EnvFile); err == nil {
			if err := loadEnvFile(k, opt.EnvFile, opt.EnvPrefix, transformPrefixedEnv); err != nil {
				log.Error("error parsing env file",
					zap.Error(err),
					zap.String("file", opt.EnvFile),
				)
				return config, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("unable to stat env file", zap.Error(err), zap.String("file", opt.EnvFile))
		}
	}

	if err := k.Load(env.Provider(opt.EnvPrefix, ".", transformPrefixedEnv), nil); err != nil {
		log.Error("error parsing env vars", zap.Error(err))
		return config, err
	}

	if opt.Cli != nil {
		transformFlag := func(s string) string {
			if opt.CliMap != nil {
				if name, ok := opt.CliMap[s]; ok {
					return name
				}
			}

			// replace - with _
			return strings.ReplaceAll(strings.ToLower(s), "-", "_")
		}

		if err := k.Load(cliflags.Provider(opt.Cli, ".", transformFlag), nil); err != nil {
			log.Error("error parsing cli flags", zap.Error(err))
			return config, err
		}
	}

	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "conf"}); err != nil {
		log.Error("error unmarshalling config", zap.Error(err))
		return config, err
	}

	return config, nil
}

// loadEnvFile loads the prefixed variables of a dotenv file into k, keyed
// the same way as the environment.
func loadEnvFile(k *koanf.Koanf, name, prefix string, transform func(string) string) error {
	envK := koanf.New(".")
	if err := envK.Load(file.Provider(name), dotenv.Parser()); err != nil {
		return err
	}

	mp := make(map[string]any)
	for key, val := range envK.All() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		mp[transform(key)] = val
	}

	return k.Load(confmap.Provider(mp, "."), nil)
}

func transformEnv(s, prefix string) string {
	// allow specifying nested env vars w/ __
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "__", ".")
}
