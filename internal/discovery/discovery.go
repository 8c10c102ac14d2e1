// Package discovery finds hosts on the local network with an nmap ping sweep.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ashureev/heartx/internal/domain"
	"github.com/ashureev/heartx/internal/executor"
)

// DefaultSubnet is swept when no subnet is configured.
const DefaultSubnet = "192.168.1.0/24"

const (
	reportMarker = "Nmap scan report for"
	macMarker    = "MAC Address:"
)

// Runner executes a shell command. *executor.Executor satisfies it.
type Runner interface {
	Execute(ctx context.Context, command string) executor.Result
}

// Discoverer runs the sweep and parses its output.
type Discoverer struct {
	runner Runner
	subnet string
	logger *slog.Logger
}

// New creates a Discoverer for subnet.
func New(runner Runner, subnet string, logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	if subnet == "" {
		subnet = DefaultSubnet
	}
	return &Discoverer{runner: runner, subnet: subnet, logger: logger}
}

// Command returns the shell pipeline used for the sweep.
func (d *Discoverer) Command() string {
	return fmt.Sprintf("nmap -sn %s | grep -E 'Nmap scan report|MAC Address'", d.subnet)
}

// Discover sweeps the subnet. An error is returned only when the sweep could
// not run to completion; a sweep that finds nothing yields an empty list.
func (d *Discoverer) Discover(ctx context.Context) ([]domain.Host, error) {
	res := d.runner.Execute(ctx, d.Command())
	if res.Err != nil {
		d.logger.Warn("Network discovery failed", "subnet", d.subnet, "error", res.Err)
		return []domain.Host{}, fmt.Errorf("network discovery: %w", res.Err)
	}

	hosts := ParseHosts(res.Output)
	d.logger.Info("Network discovery complete", "subnet", d.subnet, "hosts", len(hosts), "type", res.Type)
	return hosts, nil
}

// ParseHosts extracts hosts from nmap ping-sweep lines. A report line opens a
// host; a following MAC line annotates it. MAC lines with no open host are
// ignored.
func ParseHosts(lines []string) []domain.Host {
	hosts := []domain.Host{}
	var current *domain.Host

	for _, line := range lines {
		switch {
		case strings.Contains(line, reportMarker):
			if current != nil {
				hosts = append(hosts, *current)
			}
			fields := strings.Fields(line)
			current = &domain.Host{IP: strings.Trim(fields[len(fields)-1], "()")}

		case strings.Contains(line, macMarker):
			if current == nil {
				continue
			}
			info := strings.TrimSpace(line[strings.Index(line, macMarker)+len(macMarker):])
			if fields := strings.Fields(info); len(fields) > 0 {
				current.MAC = fields[0]
			}
			if open := strings.Index(info, "("); open >= 0 {
				vendor := info[open+1:]
				if end := strings.LastIndex(vendor, ")"); end >= 0 {
					vendor = vendor[:end]
				}
				current.Vendor = vendor
			}
		}
	}

	if current != nil {
		hosts = append(hosts, *current)
	}
	return hosts
}
