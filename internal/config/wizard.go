package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to akasha! Let's attune your archive.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Dataset.
	datasetPrompt := promptui.Prompt{
		Label:   "Dataset directory (leave blank for the built-in records)",
		Default: "",
	}
	dir, err := datasetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dataset dir: %w", err)
	}
	cfg.Dataset.Dir = strings.TrimSpace(dir)

	if cfg.Dataset.Dir != "" {
		includePrompt := promptui.Prompt{
			Label:   "Include patterns (comma-separated globs)",
			Default: "**/*.json, **/*.yaml",
		}
		includeStr, err := includePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("include patterns: %w", err)
		}
		cfg.Dataset.Include = splitAndTrim(includeStr)
	}

	// 2. Data directory for saved transmissions.
	dataPrompt := promptui.Prompt{
		Label:   "Directory for saved transmissions",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Oracle pacing.
	delayPrompt := promptui.Prompt{
		Label:    "Oracle thinking delay in milliseconds (0 to disable)",
		Default:  strconv.Itoa(cfg.Oracle.ThinkDelayMS),
		Validate: validateNonNegative,
	}
	delayStr, err := delayPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("think delay: %w", err)
	}
	cfg.Oracle.ThinkDelayMS, _ = strconv.Atoi(delayStr)

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port for akasha serve",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validateNonNegative,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 5. Log level.
	levelPrompt := promptui.Select{
		Label: "Log level",
		Items: []string{"info", "debug", "warn", "error"},
	}
	if _, cfg.LogLevel, err = levelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateNonNegative(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 0 {
		return fmt.Errorf("must be non-negative")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
