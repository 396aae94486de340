package classify

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"passlens/internal/dump"
)

// ruleConfig is the TOML shape of one rule entry.
type ruleConfig struct {
	Kind      string   `toml:"kind"`
	Category  string   `toml:"category"`
	Exclusive *bool    `toml:"exclusive"`
	Tier      string   `toml:"tier"`
	Tokens    []string `toml:"tokens"`
	Scope     string   `toml:"scope"`
	Passes    []string `toml:"passes"`

	Structural structuralConfig `toml:"structural"`
}

type structuralConfig struct {
	BlockDecrease bool   `toml:"block-decrease"`
	BlockIncrease bool   `toml:"block-increase"`
	CallRemoved   bool   `toml:"call-removed"`
	HunkRemoves   bool   `toml:"hunk-removes"`
	BlockNote     string `toml:"block-note"`
}

type rulesConfig struct {
	Rule []ruleConfig `toml:"rule"`
}

// LoadRules reads an ordered rule table from a TOML file. The file's order
// is the priority order; the Other fallback is implicit and never written.
func LoadRules(path string) (*RuleSet, error) {
	var cfg rulesConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if len(cfg.Rule) == 0 {
		return nil, fmt.Errorf("rules %s: no [[rule]] entries", path)
	}

	rs := &RuleSet{Rules: make([]Rule, 0, len(cfg.Rule))}
	for i, rc := range cfg.Rule {
		rule, err := rc.toRule()
		if err != nil {
			return nil, fmt.Errorf("rules %s: rule %d: %w", path, i+1, err)
		}
		rs.Rules = append(rs.Rules, rule)
	}
	return rs, nil
}

func (rc *ruleConfig) toRule() (Rule, error) {
	cat, err := ParseCategory(rc.Category)
	if err != nil {
		return Rule{}, err
	}
	r := Rule{Category: cat, Exclusive: true}
	if rc.Exclusive != nil {
		r.Exclusive = *rc.Exclusive
	}

	switch rc.Kind {
	case "structural-pattern":
		r.Kind = KindStructural
		r.Structural = Structural{
			BlockDecrease: rc.Structural.BlockDecrease,
			BlockIncrease: rc.Structural.BlockIncrease,
			CallRemoved:   rc.Structural.CallRemoved,
			HunkRemoves:   rc.Structural.HunkRemoves,
			BlockNote:     rc.Structural.BlockNote,
		}
	case "token-pattern":
		r.Kind = KindToken
		if len(rc.Tokens) == 0 {
			return Rule{}, fmt.Errorf("token-pattern rule with no tokens")
		}
		r.Tokens = rc.Tokens
		switch rc.Scope {
		case "", "any":
			r.Scope = ScopeAny
		case "added":
			r.Scope = ScopeAdded
		case "removed":
			r.Scope = ScopeRemoved
		default:
			return Rule{}, fmt.Errorf("unknown scope %q", rc.Scope)
		}
	case "pass-name-hint":
		r.Kind = KindPassName
		if len(rc.Passes) == 0 {
			return Rule{}, fmt.Errorf("pass-name-hint rule with no passes")
		}
		r.PassNames = rc.Passes
	default:
		return Rule{}, fmt.Errorf("unknown rule kind %q", rc.Kind)
	}

	switch rc.Tier {
	case "":
	case "gimple":
		t := dump.TierGimple
		r.Tier = &t
	case "rtl":
		t := dump.TierRTL
		r.Tier = &t
	default:
		return Rule{}, fmt.Errorf("unknown tier %q", rc.Tier)
	}
	return r, nil
}
