package hederalegacy

import (
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	ProfileOperator = "operator"
	ProfileAlice    = "alice"
	ProfileBen      = "ben"
	ProfileTreasury = "treasury"

	DeploymentCollection = "collection"
	DeploymentStaking    = "staking"
	DeploymentNft        = "nft"

	DefaultMaxGas = 15_000_000
)

type Config struct {
	Network      Network
	DatabasePath string
	MaxGas       uint64
	Profiles     map[string]Credentials
	SupplyKey    string
	Deployments  []Deployment
}

type Credentials struct {
	Name       string
	IDVar      string
	KeyVar     string
	AccountID  string
	PrivateKey string
}

func (c Credentials) Validate() error {
	if c.AccountID == "" || c.PrivateKey == "" {
		return errors.Wrapf(
			ErrMissingCredentials,
			"environment variables %s and %s must be present",
			c.IDVar,
			c.KeyVar)
	}
	return nil
}

var profileVars = []struct {
	name   string
	idVar  string
	keyVar string
}{
	{ProfileOperator, "MY_ACCOUNT_ID", "MY_PRIVATE_KEY"},
	{ProfileAlice, "ALICE_ID", "ALICE_PVKEY"},
	{ProfileBen, "BEN_ID", "BEN_PVKEY"},
	{ProfileTreasury, "TREASURY_ID", "TREASURY_PVKEY"},
}

var deploymentVars = []struct {
	name        string
	contractVar string
	tokenVar    string
	contractID  string
	tokenID     string
}{
	{DeploymentCollection, "HL_CONTRACT_ID", "HL_TOKEN_ID", "0.0.49101999", "0.0.49102000"},
	{DeploymentStaking, "HLEG_CONTRACT_ID", "HLEG_TOKEN_ID", "0.0.49102024", "0.0.49102025"},
	{DeploymentNft, "", "NFT_TOKEN_ID", "", "0.0.49094794"},
}

// LoadConfig reads .env (if present), the environment and, when path is not
// empty, a config file. Environment values take precedence over the file.
func LoadConfig(path string) (config *Config, err error) {
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		err = errors.Wrap(err, "unable to load .env")
		return
	}
	err = nil

	v := viper.New()
	v.SetDefault("HEDERA_NETWORK", string(NetworkTestNet))
	v.SetDefault("HEDERA_DB_PATH", "hedera-legacy.db")
	v.SetDefault("HEDERA_MAX_GAS", DefaultMaxGas)
	for _, d := range deploymentVars {
		if d.contractVar != "" {
			v.SetDefault(d.contractVar, d.contractID)
		}
		v.SetDefault(d.tokenVar, d.tokenID)
	}
	v.AutomaticEnv()

	if path != "" {
		log.Info().Msgf("loading config file: %s", path)
		v.SetConfigFile(path)
		if err = v.MergeInConfig(); err != nil {
			err = errors.Wrapf(err, "failed to read config file: %s", path)
			return
		}
	}

	return configFromViper(v)
}

func configFromViper(v *viper.Viper) (config *Config, err error) {
	config = &Config{
		Network:      Network(strings.ToLower(v.GetString("HEDERA_NETWORK"))),
		DatabasePath: v.GetString("HEDERA_DB_PATH"),
		MaxGas:       v.GetUint64("HEDERA_MAX_GAS"),
		Profiles:     map[string]Credentials{},
		SupplyKey:    v.GetString("SUPPLY_PVKEY"),
	}

	if err = config.Network.Validate(); err != nil {
		return
	}

	for _, p := range profileVars {
		config.Profiles[p.name] = Credentials{
			Name:       p.name,
			IDVar:      p.idVar,
			KeyVar:     p.keyVar,
			AccountID:  v.GetString(p.idVar),
			PrivateKey: v.GetString(p.keyVar),
		}
	}

	for _, d := range deploymentVars {
		deployment := Deployment{Name: d.name, TokenID: v.GetString(d.tokenVar)}
		if d.contractVar != "" {
			deployment.ContractID = v.GetString(d.contractVar)
		}
		config.Deployments = append(config.Deployments, deployment)
	}

	return
}

func (c *Config) Profile(name string) (creds Credentials, err error) {
	creds, ok := c.Profiles[name]
	if !ok {
		err = errors.Wrapf(ErrProfileNotFound, "'%s'", name)
		return
	}
	err = creds.Validate()
	return
}

func (c *Config) Operator() (Credentials, error) {
	return c.Profile(ProfileOperator)
}

// Deployment returns the configured ids for name, overridden by whatever the
// store recorded from a previous deploy or initialize. Once the stored
// contract differs from the configured one, the configured token no longer
// applies.
func (c *Config) Deployment(store Store, name string) (deployment Deployment, err error) {
	for _, d := range c.Deployments {
		if d.Name == name {
			deployment = d
		}
	}
	deployment.Name = name

	if store == nil {
		return
	}

	stored, err := store.GetDeployment(name)
	if errors.Is(err, ErrDeploymentNotFound) {
		err = nil
		return
	}
	if err != nil {
		return
	}

	if stored.ContractID != "" && stored.ContractID != deployment.ContractID {
		deployment.ContractID = stored.ContractID
		deployment.TokenID = stored.TokenID
		return
	}
	if stored.TokenID != "" {
		deployment.TokenID = stored.TokenID
	}

	return
}
