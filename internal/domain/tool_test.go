package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolCatalogValidateFillsCategory(t *testing.T) {
	catalog := ToolCatalog{
		"recon": {
			"nmap": {Name: "Nmap", Command: "nmap"},
		},
	}

	require.NoError(t, catalog.Validate())
	assert.Equal(t, "recon", catalog["recon"]["nmap"].Category)
}

func TestToolCatalogValidateRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		catalog ToolCatalog
	}{
		{name: "empty", catalog: ToolCatalog{}},
		{name: "empty category", catalog: ToolCatalog{"recon": {}}},
		{name: "missing command", catalog: ToolCatalog{"recon": {"nmap": {Name: "Nmap"}}}},
		{name: "missing name", catalog: ToolCatalog{"recon": {"nmap": {Command: "nmap"}}}},
		{name: "category mismatch", catalog: ToolCatalog{"recon": {"nmap": {Name: "Nmap", Command: "nmap", Category: "exploit"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.catalog.Validate())
		})
	}
}

func TestToolCatalogNamesSorted(t *testing.T) {
	catalog := ToolCatalog{
		"recon":   {"nmap": {}, "nikto": {}},
		"defense": {"tcpdump": {}, "netstat": {}},
	}

	assert.Equal(t, []string{"netstat", "tcpdump", "nikto", "nmap"}, catalog.Names())
}

func TestNewCommandID(t *testing.T) {
	at := time.Unix(1700000000, 500)
	assert.Equal(t, "cmd_1700000000", NewCommandID(at))
}
