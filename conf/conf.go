package conf

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/tianhongw/attach/pkg/message"
)

var gConfig *Config
var mu sync.Mutex

func GetConfig() *Config {
	mu.Lock()
	defer mu.Unlock()

	return gConfig
}

func setConfig(c *Config) {
	mu.Lock()
	gConfig = c
	mu.Unlock()
}

const (
	StrategyRegistry = "registry"
	StrategyVariant  = "variant"
)

type Config struct {
	Log   *LogOption   `mapstructure:"log"`
	Codec *CodecOption `mapstructure:"codec"`
}

type LogOption struct {
	Type    string   `mapstructure:"type"`
	Level   string   `mapstructure:"level"`
	Format  string   `mapstructure:"format"`
	Outputs []string `mapstructure:"outputs"`
}

type CodecOption struct {
	// "registry" or "variant"
	Strategy string `mapstructure:"strategy"`

	// built-in payload types to register, all of them when empty
	Types []string `mapstructure:"types"`

	// extra discriminant -> built-in payload type, registry strategy only
	Aliases map[string]string `mapstructure:"aliases"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.type", "std")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.outputs", []string{"stderr"})
	v.SetDefault("codec.strategy", StrategyRegistry)
}

// Init loads cfgFile on top of the defaults and makes the result available
// through GetConfig. An empty cfgFile loads the defaults only.
func Init(cfgFile, cfgType string) (string, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType(cfgType)

		if err := v.ReadInConfig(); err != nil {
			return "", err
		}
	}

	c := new(Config)

	if err := v.Unmarshal(c); err != nil {
		return "", err
	}

	if err := c.Validate(); err != nil {
		return "", err
	}

	setConfig(c)

	return v.ConfigFileUsed(), nil
}

func (c *Config) Validate() error {
	if c.Codec == nil {
		return fmt.Errorf("codec section is missing")
	}

	switch c.Codec.Strategy {
	case StrategyRegistry, StrategyVariant:
	default:
		return fmt.Errorf("unknown codec strategy: %s", c.Codec.Strategy)
	}

	for _, t := range c.Codec.Types {
		if _, ok := builtins[strings.ToLower(t)]; !ok {
			return fmt.Errorf("unknown payload type: %s", t)
		}
	}

	for alias, t := range c.Codec.Aliases {
		if _, ok := builtins[strings.ToLower(t)]; !ok {
			return fmt.Errorf("alias %s: unknown payload type: %s", alias, t)
		}
	}

	return nil
}

var builtins = map[string]func(r *message.Registry, discriminant string){
	"image": func(r *message.Registry, d string) { message.Register(r, message.ImageType, d) },
	"audio": func(r *message.Registry, d string) { message.Register(r, message.AudioType, d) },
}

// BuiltinTypes lists the payload types BuildRegistry knows by name.
func BuiltinTypes() []string {
	types := make([]string, 0, len(builtins))
	for t := range builtins {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// BuildRegistry registers the configured built-in types under their own
// names, then each alias. Aliases are applied in sorted order so the result
// does not depend on map iteration.
func BuildRegistry(opt *CodecOption) (*message.Registry, error) {
	r := message.NewRegistry()

	types := BuiltinTypes()
	if opt != nil && len(opt.Types) > 0 {
		types = opt.Types
	}

	for _, t := range types {
		register, ok := builtins[strings.ToLower(t)]
		if !ok {
			return nil, fmt.Errorf("unknown payload type: %s", t)
		}
		register(r, strings.ToLower(t))
	}

	if opt == nil {
		return r, nil
	}

	aliases := make([]string, 0, len(opt.Aliases))
	for alias := range opt.Aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	for _, alias := range aliases {
		register, ok := builtins[strings.ToLower(opt.Aliases[alias])]
		if !ok {
			return nil, fmt.Errorf("alias %s: unknown payload type: %s", alias, opt.Aliases[alias])
		}
		register(r, alias)
	}

	return r, nil
}
