package config

import "strings"

// 默认值常量
const (
	defaultAppLogLevel     = "info"
	defaultSteamAppID      = 730
	defaultSteamContextID  = 2
	defaultSteamTimeout    = 30
	defaultPushTitle       = "Steam库存变化通知"
	defaultMonitorInterval = 60
	defaultSnapshotPath    = "inventory_data.json"
)

// applyDefaults 为所有子配置应用默认值。
func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Steam.applyDefaults()
	c.Push.applyDefaults()
	c.Monitor.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if strings.TrimSpace(a.LogLevel) == "" {
		a.LogLevel = defaultAppLogLevel
	}
}

func (s *SteamConfig) applyDefaults() {
	if s.AppID <= 0 {
		s.AppID = defaultSteamAppID
	}
	if s.ContextID <= 0 {
		s.ContextID = defaultSteamContextID
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = defaultSteamTimeout
	}
}

func (p *PushConfig) applyDefaults() {
	p.Provider = strings.ToLower(strings.TrimSpace(p.Provider))
	if strings.TrimSpace(p.Title) == "" {
		p.Title = defaultPushTitle
	}
}

func (m *MonitorConfig) applyDefaults() {
	if m.IntervalSeconds <= 0 {
		m.IntervalSeconds = defaultMonitorInterval
	}
	if strings.TrimSpace(m.SnapshotPath) == "" {
		m.SnapshotPath = defaultSnapshotPath
	}
}
