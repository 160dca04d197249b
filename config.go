package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	DatabasePath         string
	ExportDirectory      string
	GridSize             float64
	GridSnap             bool
	Confirmations        bool
	FallbackAspect       float64
	VirtualizeThreshold  int
	HoverEffectThreshold int
}

func loadConfig() *Config {
	config := &Config{
		DatabasePath:         "seatplan.db",
		GridSize:             1.0,
		GridSnap:             false,
		Confirmations:        true,
		FallbackAspect:       fallbackAspectRatio,
		VirtualizeThreshold:  defaultVirtualizeThreshold,
		HoverEffectThreshold: defaultHoverEffectThreshold,
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	configPath := filepath.Join(homeDir, ".seatplanrc")
	file, err := os.Open(configPath)
	if err != nil {
		return config
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "database", "database_path", "db":
			config.DatabasePath = expandPath(homeDir, value)
		case "exportdirectory", "export_directory", "exportdir":
			config.ExportDirectory = expandPath(homeDir, value)
		case "gridsize", "grid_size":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				config.GridSize = v
			}
		case "gridsnap", "grid_snap":
			config.GridSnap = strings.ToLower(value) == "true"
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "fallbackaspect", "fallback_aspect":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				config.FallbackAspect = v
			}
		case "virtualizethreshold", "virtualize_threshold":
			if v, err := strconv.Atoi(value); err == nil && v > 0 {
				config.VirtualizeThreshold = v
			}
		case "hoverthreshold", "hover_threshold":
			if v, err := strconv.Atoi(value); err == nil && v > 0 {
				config.HoverEffectThreshold = v
			}
		}
	}

	return config
}

func expandPath(homeDir, value string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetExportPath(filename string) string {
	if c.ExportDirectory == "" {
		return filename
	}
	os.MkdirAll(c.ExportDirectory, 0755)
	return filepath.Join(c.ExportDirectory, filename)
}

func (c *Config) Grid() GridConfig {
	return GridConfig{Enabled: c.GridSnap, Size: c.GridSize}
}
