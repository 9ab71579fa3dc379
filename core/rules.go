package core

import (
	"sync"

	"github.com/dlclark/regexp2"
)

const (
	ActionAllow    = "allow"
	ActionDisallow = "disallow"
)

// Rule is a conditional allow/disallow directive from a game manifest.
type Rule struct {
	Action   string          `json:"action" mapstructure:"action"`
	OS       *OSRule         `json:"os,omitempty" mapstructure:"os"`
	Features map[string]bool `json:"features,omitempty" mapstructure:"features"`
}

type OSRule struct {
	Name string `json:"name,omitempty" mapstructure:"name"`
	// Version is a regular expression in Java syntax
	Version string `json:"version,omitempty" mapstructure:"version"`
	Arch    string `json:"arch,omitempty" mapstructure:"arch"`
}

// Rules are evaluated in order and the last matching rule wins.
type Rules []Rule

// Features are launcher feature flags referenced by rules, e.g. is_demo_user.
type Features map[string]bool

// Allows reports whether something guarded by the rules applies to the
// platform. An empty rule list always applies.
func (r Rules) Allows(p Platform, features Features) bool {
	if len(r) == 0 {
		return true
	}
	allowed := false
	for _, rule := range r {
		if rule.matches(p, features) {
			allowed = rule.Action == ActionAllow
		}
	}
	return allowed
}

func (r Rule) matches(p Platform, features Features) bool {
	if r.OS != nil {
		if r.OS.Name != "" && !p.matchesName(r.OS.Name) {
			return false
		}
		if r.OS.Arch != "" && !p.matchesArch(r.OS.Arch) {
			return false
		}
		if r.OS.Version != "" && !matchVersion(r.OS.Version, p.Version) {
			return false
		}
	}
	for name, want := range r.Features {
		if features[name] != want {
			return false
		}
	}
	return true
}

var versionPatterns sync.Map

func matchVersion(pattern, version string) bool {
	var re *regexp2.Regexp
	if cached, ok := versionPatterns.Load(pattern); ok {
		re = cached.(*regexp2.Regexp)
	} else {
		compiled, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return false
		}
		versionPatterns.Store(pattern, compiled)
		re = compiled
	}
	ok, err := re.MatchString(version)
	return err == nil && ok
}
