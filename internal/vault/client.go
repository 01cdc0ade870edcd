package vault

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"

	"license-gateway/config"
)

// GatewayKeys are the two shared secrets as stored in Vault.
type GatewayKeys struct {
	AdminKey  string
	ClientKey string
}

// Client wraps the HashiCorp Vault client. When Vault is disabled the
// client is inert and FetchGatewayKeys fails, leaving the environment
// values in effect.
type Client struct {
	client *api.Client
	config config.VaultConfig
}

// NewClient creates a new Vault client
func NewClient(cfg config.VaultConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{config: cfg}, nil
	}

	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = cfg.Address

	if cfg.TLSEnabled && cfg.CACert != "" {
		tlsConfig := &api.TLSConfig{
			CACert: cfg.CACert,
		}
		if err := vaultConfig.ConfigureTLS(tlsConfig); err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
	}

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	client.SetToken(cfg.Token)

	return &Client{client: client, config: cfg}, nil
}

// IsEnabled returns whether Vault integration is active
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// FetchGatewayKeys reads the admin and client keys from the configured KV
// v2 path. Both fields must be present in the secret.
func (c *Client) FetchGatewayKeys(ctx context.Context) (*GatewayKeys, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("vault is disabled")
	}

	secret, err := c.client.Logical().ReadWithContext(ctx, c.config.SecretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway keys from vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no secret found at %s", c.config.SecretPath)
	}

	// KV v2 nests the payload under "data"
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		data = secret.Data
	}

	keys := &GatewayKeys{
		AdminKey:  getString(data, "admin_key"),
		ClientKey: getString(data, "client_key"),
	}

	if keys.AdminKey == "" || keys.ClientKey == "" {
		return nil, fmt.Errorf("secret at %s is missing admin_key or client_key", c.config.SecretPath)
	}

	return keys, nil
}

// Health checks Vault connectivity
func (c *Client) Health(ctx context.Context) error {
	if !c.config.Enabled {
		return nil
	}

	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}
	if !health.Initialized || health.Sealed {
		return fmt.Errorf("vault is not ready (initialized=%v, sealed=%v)", health.Initialized, health.Sealed)
	}

	return nil
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
