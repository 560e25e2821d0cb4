package config

import (
	"fmt"
	"strings"
)

// validate 对配置进行基础校验。
func validate(c *Config) error {
	if err := c.Steam.validate(); err != nil {
		return err
	}
	if err := c.Push.validate(); err != nil {
		return err
	}
	return nil
}

func (s *SteamConfig) validate() error {
	id := strings.TrimSpace(s.SteamID)
	if id == "" {
		return fmt.Errorf("steam.steam_id is required")
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return fmt.Errorf("steam.steam_id must be a numeric 64-bit SteamID, got %q", s.SteamID)
		}
	}
	if s.UseSession && strings.TrimSpace(s.DevtoolsURL) == "" {
		return fmt.Errorf("steam.devtools_url is required when steam.use_session is enabled")
	}
	return nil
}

func (p *PushConfig) validate() error {
	switch p.Provider {
	case "", "pushplus", "serverchan", "bark":
	default:
		return fmt.Errorf("push.provider must be one of pushplus/serverchan/bark, got %q", p.Provider)
	}
	if p.Provider != "" && strings.TrimSpace(p.Token) == "" {
		return fmt.Errorf("push.token is required when push.provider is set")
	}
	return nil
}
