package translator

import (
	"fmt"
	"strings"
)

// rule maps co-occurring keywords to a canned command. Every word in all must
// appear, plus at least one word of any when any is non-empty.
type rule struct {
	all     []string
	any     []string
	command string
}

func (r rule) matches(lower string) bool {
	for _, word := range r.all {
		if !strings.Contains(lower, word) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, word := range r.any {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{all: []string{"scan"}, any: []string{"network", "subnet"}, command: "nmap -sn 192.168.1.0/24"},
	{all: []string{"scan"}, any: []string{"port", "ssh"}, command: "nmap -p 22 192.168.1.0/24"},
	{all: []string{"scan", "web"}, command: "nikto -h http://192.168.1.1"},
	{all: []string{"network"}, any: []string{"connection", "check"}, command: "netstat -tulpn"},
	{all: []string{"monitor", "traffic"}, command: "tcpdump -i any -n -c 20"},
	{all: []string{"brute", "ssh"}, command: "hydra -l root -P /usr/share/wordlists/rockyou.txt ssh://192.168.1.10"},
}

// Sentinel returns the untranslatable-input marker for input.
func Sentinel(input string) string {
	return fmt.Sprintf("# Could not translate: '%s' - try being more specific", input)
}

// TranslateRules resolves input with the keyword rules alone. Mode does not
// influence the rule path.
func TranslateRules(input string) Translation {
	lower := strings.ToLower(input)
	for _, r := range rules {
		if r.matches(lower) {
			return Translation{Command: r.command, Source: SourceRules}
		}
	}
	return Translation{Command: Sentinel(input), Source: SourceUnresolved}
}
