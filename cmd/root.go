package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tianhongw/attach/conf"
	"github.com/tianhongw/attach/pkg/util"
	"github.com/tianhongw/attach/version"
)

const (
	defaultCfgFile = "$HOME/.attach.toml"
	defaultCfgType = "toml"
)

var (
	cfgFile  string
	cfgType  string
	strategy string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Decode and re-encode messages with typed attachments",
		Version: fmt.Sprintf(
			`%s
Git branch: %s
Git commit: %s
Git summary: %s
Commit time: %s
Build time: %s`,
			version.Version,
			version.GitBranch,
			version.GitCommit,
			version.GitSummary,
			version.GitCommitTime,
			version.BuildTime,
		),
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return util.InitProfiling()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return util.FlushProfiling()
		},
	}

	flags := cmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", fmt.Sprintf("Config file (default is %s)", defaultCfgFile))
	flags.StringVarP(&cfgType, "type", "t", "", fmt.Sprintf("Config file type (default is %s)", defaultCfgType))
	flags.StringVarP(&strategy, "strategy", "s", "", "Attachment codec, registry or variant (default from config)")

	util.AddProfilingFlags(flags)

	cmd.AddCommand(newDecodeCommand(), newRoundTripCommand(), newTypesCommand())

	return cmd
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal("get home dir failed, ", err)
		}

		cfgFile = strings.Replace(defaultCfgFile, "$HOME", home, 1)

		// the default file is optional
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			cfgFile = ""
		}
	}

	if cfgType == "" {
		cfgType = defaultCfgType
	}

	if cfg, err := conf.Init(cfgFile, cfgType); err != nil {
		log.Fatal("init config file failed, ", err)
	} else {
		cfgFile = cfg
	}
}
