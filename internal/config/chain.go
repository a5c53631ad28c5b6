package config

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/rajiknows/mockchain/pkg/consensus"
)

type Chain struct {
	Consensus consensus.Config
}

const (
	Cfg_chain_consensus     = "chain.consensus"
	Cfg_chain_difficulty    = "chain.difficulty"
	Cfg_chain_mineInterval  = "chain.mine_interval"
	Cfg_chain_poolThreshold = "chain.pool_threshold"
	Cfg_chain_stakes        = "chain.stakes"
)

func init() {
	viper.SetDefault(Cfg_chain_consensus, string(consensus.ProofOfWorkType))
	viper.SetDefault(Cfg_chain_difficulty, consensus.DefaultDifficulty)
	viper.SetDefault(Cfg_chain_mineInterval, consensus.DefaultMineInterval)
	viper.SetDefault(Cfg_chain_poolThreshold, consensus.DefaultPoolThreshold)
}

func buildChainConfig() (*Chain, error) {
	c := &Chain{
		Consensus: consensus.Config{
			Type:          consensus.Type(viper.GetString(Cfg_chain_consensus)),
			Difficulty:    viper.GetInt(Cfg_chain_difficulty),
			MineInterval:  viper.GetDuration(Cfg_chain_mineInterval),
			PoolThreshold: viper.GetInt(Cfg_chain_poolThreshold),
		},
	}

	if c.Consensus.Difficulty < 0 {
		return nil, errors.New("difficulty cannot be negative")
	}

	stakes := viper.GetStringMapString(Cfg_chain_stakes)
	if len(stakes) > 0 {
		c.Consensus.Stakes = make(map[string]uint64, len(stakes))
		for addr, s := range stakes {
			v, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing stake for %s", addr)
			}
			c.Consensus.Stakes[addr] = v
		}
	}

	return c, nil
}
