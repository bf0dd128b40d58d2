//go:build darwin

package platform

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}

	plistPath, err := launchAgentPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(plistPath), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create LaunchAgents dir: %w", err)
	}

	content := buildLaunchAgentPlist(launchAgentLabel(appName), execPath)
	if err := os.WriteFile(plistPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write plist: %w", err)
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}

	plistPath, err := launchAgentPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove plist: %w", err)
	}

	return nil
}

func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	plistPath, err := launchAgentPath(appName)
	if err != nil {
		return false, fmt.Errorf("check autostart: %w", err)
	}
	exists, err := fileExists(plistPath)
	if err != nil {
		return false, fmt.Errorf("check autostart: %w", err)
	}
	return exists, nil
}

func launchAgentPath(appName string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(appName)+".plist"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentLabel(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "hourglass"
	}
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	return "app.hourglass." + name
}

func buildLaunchAgentPlist(label, execPath string) string {
	var plist strings.Builder
	plist.WriteString(xml.Header)
	plist.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	plist.WriteString(`<plist version="1.0">` + "\n<dict>\n")
	writePlistKey(&plist, "Label", "string", label)
	plist.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n")
	for _, arg := range []string{execPath, "gui"} {
		plist.WriteString("\t\t<string>" + escapeXML(arg) + "</string>\n")
	}
	plist.WriteString("\t</array>\n")
	plist.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	writePlistKey(&plist, "ProcessType", "string", "Interactive")
	plist.WriteString("</dict>\n</plist>\n")
	return plist.String()
}

func writePlistKey(plist *strings.Builder, key, kind, value string) {
	fmt.Fprintf(plist, "\t<key>%s</key>\n\t<%s>%s</%s>\n", key, kind, escapeXML(value), kind)
}

func escapeXML(value string) string {
	var escaped strings.Builder
	_ = xml.EscapeText(&escaped, []byte(value))
	return escaped.String()
}
