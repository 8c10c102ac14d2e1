package discovery

import (
	"context"
	"testing"

	"github.com/ashureev/heartx/internal/domain"
	"github.com/ashureev/heartx/internal/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	result  executor.Result
	command string
}

func (s *stubRunner) Execute(_ context.Context, command string) executor.Result {
	s.command = command
	return s.result
}

func TestParseHostsTwoPairs(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Nmap scan report for router.lan (192.168.1.1)",
		"MAC Address: AA:BB:CC:DD:EE:01 (Netgear)",
		"Nmap scan report for 192.168.1.20",
		"MAC Address: AA:BB:CC:DD:EE:02 (Raspberry Pi Foundation)",
	}

	hosts := ParseHosts(lines)

	require.Len(t, hosts, 2)
	assert.Equal(t, domain.Host{IP: "192.168.1.1", MAC: "AA:BB:CC:DD:EE:01", Vendor: "Netgear"}, hosts[0])
	assert.Equal(t, domain.Host{IP: "192.168.1.20", MAC: "AA:BB:CC:DD:EE:02", Vendor: "Raspberry Pi Foundation"}, hosts[1])
}

func TestParseHostsEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  []domain.Host
	}{
		{name: "empty", lines: nil, want: []domain.Host{}},
		{name: "garbage", lines: []string{"sh: 1: nmap: not found"}, want: []domain.Host{}},
		{
			name:  "host without mac",
			lines: []string{"Nmap scan report for 192.168.1.5"},
			want:  []domain.Host{{IP: "192.168.1.5"}},
		},
		{
			name:  "mac without vendor",
			lines: []string{"Nmap scan report for 10.0.0.2", "MAC Address: 00:11:22:33:44:55"},
			want:  []domain.Host{{IP: "10.0.0.2", MAC: "00:11:22:33:44:55"}},
		},
		{
			name:  "orphan mac ignored",
			lines: []string{"MAC Address: 00:11:22:33:44:55 (Acme)", "Nmap scan report for 10.0.0.3"},
			want:  []domain.Host{{IP: "10.0.0.3"}},
		},
		{
			name:  "vendor with parentheses",
			lines: []string{"Nmap scan report for 10.0.0.4", "MAC Address: 00:11:22:33:44:66 (Acme (Shenzhen))"},
			want:  []domain.Host{{IP: "10.0.0.4", MAC: "00:11:22:33:44:66", Vendor: "Acme (Shenzhen)"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHosts(tt.lines))
		})
	}
}

func TestDiscoverRunsSweep(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{result: executor.Result{
		Type:   domain.ResultSuccess,
		Output: []string{"Nmap scan report for 10.1.0.9", "MAC Address: 00:00:00:00:00:09 (Dell)"},
	}}
	d := New(runner, "10.1.0.0/24", nil)

	hosts, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nmap -sn 10.1.0.0/24 | grep -E 'Nmap scan report|MAC Address'", runner.command)
	assert.Equal(t, []domain.Host{{IP: "10.1.0.9", MAC: "00:00:00:00:00:09", Vendor: "Dell"}}, hosts)
}

func TestDiscoverNonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{result: executor.Result{Type: domain.ResultError, ExitCode: 1, Output: []string{}}}
	hosts, err := New(runner, "", nil).Discover(context.Background())

	require.NoError(t, err)
	assert.Empty(t, hosts)
	assert.Contains(t, runner.command, DefaultSubnet)
}

func TestDiscoverReportsExecutionFailure(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{result: executor.Result{
		Type:   domain.ResultError,
		Output: []string{"Command timed out after 30 seconds"},
		Err:    executor.ErrTimeout,
	}}
	hosts, err := New(runner, "", nil).Discover(context.Background())

	assert.ErrorIs(t, err, executor.ErrTimeout)
	assert.NotNil(t, hosts)
	assert.Empty(t, hosts)
}
