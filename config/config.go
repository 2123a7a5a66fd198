package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Config is the artchaind daemon configuration.
type Config struct {
	DataDir              string `toml:"DataDir"`
	MetricsAddress       string `toml:"MetricsAddress"`
	Environment          string `toml:"Environment"`
	Deployer             string `toml:"Deployer"`
	DistributionRatioBps uint32 `toml:"DistributionRatioBps"`
}

// Load loads the configuration from the given path, creating a default file
// when none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./artchain-data"
	}
	if strings.TrimSpace(cfg.MetricsAddress) == "" {
		cfg.MetricsAddress = ":9464"
	}
	if cfg.DistributionRatioBps > 10_000 {
		return nil, fmt.Errorf("config: DistributionRatioBps %d exceeds 10000", cfg.DistributionRatioBps)
	}
	if _, err := cfg.DeployerAddress(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DeployerAddress parses the configured deployer into a raw address.
func (c *Config) DeployerAddress() ([20]byte, error) {
	var addr [20]byte
	trimmed := strings.TrimPrefix(strings.TrimSpace(c.Deployer), "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return addr, fmt.Errorf("config: invalid deployer address: %w", err)
	}
	if len(raw) != len(addr) {
		return addr, fmt.Errorf("config: deployer address must be %d bytes, got %d", len(addr), len(raw))
	}
	copy(addr[:], raw)
	return addr, nil
}

// createDefault generates a fresh deployer key, saves it next to the config
// file, and persists a default configuration pointing at it.
func createDefault(path string) (*Config, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	keyPath := filepath.Join(filepath.Dir(path), "deployer.key")
	encoded := hex.EncodeToString(ethcrypto.FromECDSA(key))
	if err := writeFileExclusive(keyPath, []byte(encoded)); err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:              "./artchain-data",
		MetricsAddress:       ":9464",
		Deployer:             ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
		DistributionRatioBps: 5000,
	}
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeFileExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
