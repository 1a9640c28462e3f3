package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/statfetch/bodyshape-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set bodyshape configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("source_ref: %s\n", cfg.SourceRef)
		fmt.Printf("table_id: %s\n", cfg.TableID)
		fmt.Printf("data_dir: %s\n", cfg.DataDir)
		fmt.Printf("min_age: %d\n", cfg.MinAge)
		fmt.Printf("max_age: %d\n", cfg.MaxAge)
		fmt.Printf("user_agent: %s\n", cfg.UserAgent)
		fmt.Printf("http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "source_ref":
			cfg.SourceRef = val
		case "table_id":
			cfg.TableID = val
		case "data_dir":
			cfg.DataDir = val
		case "min_age":
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid min_age: %s", val)
			}
			cfg.MinAge = n
		case "max_age":
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid max_age: %s", val)
			}
			cfg.MaxAge = n
		case "user_agent":
			cfg.UserAgent = val
		case "http_timeout_sec":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid http_timeout_sec: %s", val)
			}
			cfg.HTTPTimeoutSec = n
		case "log_level":
			cfg.LogLevel = val
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if cfg.MinAge > cfg.MaxAge {
			return fmt.Errorf("min_age %d exceeds max_age %d", cfg.MinAge, cfg.MaxAge)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
