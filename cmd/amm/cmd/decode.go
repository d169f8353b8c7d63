package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lugondev/go-amm/internal/amm"
)

// configView is the YAML rendering of a pool configuration record.
type configView struct {
	State      string `yaml:"state"`
	Seed       uint64 `yaml:"seed"`
	Authority  string `yaml:"authority,omitempty"`
	MintX      string `yaml:"mint_x"`
	MintY      string `yaml:"mint_y"`
	FeeBps     uint16 `yaml:"fee_bps"`
	ConfigBump uint8  `yaml:"config_bump"`
}

func renderConfig(config *amm.Config) (string, error) {
	view := configView{
		State:      config.State.String(),
		Seed:       config.Seed,
		MintX:      config.MintX.String(),
		MintY:      config.MintY.String(),
		FeeBps:     config.Fee,
		ConfigBump: config.ConfigBump,
	}
	if authority, ok := config.Authority(); ok {
		view.Authority = authority.String()
	}
	out, err := yaml.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(out), nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode [record]",
	Short: "Decode a pool configuration record",
	Long: `Decode a raw pool configuration record given as hex or base64 and
print it as YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.TrimSpace(args[0])

		data, err := hex.DecodeString(raw)
		if err != nil {
			data, err = base64.StdEncoding.DecodeString(raw)
			if err != nil {
				return fmt.Errorf("record is neither hex nor base64")
			}
		}

		config, err := amm.DecodeConfig(data)
		if err != nil {
			return fmt.Errorf("failed to decode record: %w", err)
		}

		out, err := renderConfig(config)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
