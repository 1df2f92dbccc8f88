package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Token is a discrete input required by the counter-attack challenge.
type Token int

const (
	TokenNone Token = iota
	TokenPrimary
	TokenSecondary
)

func (t Token) String() string {
	switch t {
	case TokenPrimary:
		return "primary"
	case TokenSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Valid reports whether t is one of the two challenge tokens.
func (t Token) Valid() bool {
	return t == TokenPrimary || t == TokenSecondary
}

// ParseToken accepts the names produced by Token.String.
func ParseToken(s string) (Token, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary":
		return TokenPrimary, nil
	case "secondary":
		return TokenSecondary, nil
	default:
		return TokenNone, fmt.Errorf("unknown token %q", s)
	}
}

// MarshalYAML writes the token by name.
func (t Token) MarshalYAML() (any, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot encode token %d", int(t))
	}
	return t.String(), nil
}

// UnmarshalYAML reads a token name.
func (t *Token) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tok, err := ParseToken(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*t = tok
	return nil
}

// FormatTokens renders a sequence compactly, e.g. "P S S P".
func FormatTokens(seq []Token) string {
	parts := make([]string, len(seq))
	for i, t := range seq {
		switch t {
		case TokenPrimary:
			parts[i] = "P"
		case TokenSecondary:
			parts[i] = "S"
		default:
			parts[i] = "?"
		}
	}
	return strings.Join(parts, " ")
}

// Challenge is the active counter-attack session. Sequence is consumed
// front to back.
type Challenge struct {
	Target      Handle
	TargetLabel string
	Sequence    []Token
	timer       Timer
}

// TimeLeft returns the seconds remaining before the challenge fails.
func (c *Challenge) TimeLeft() float64 { return c.timer.Remaining() }

// startChallenge opens a challenge against h. It is ignored while another
// challenge is active or the sim is not running.
func (s *Sim) startChallenge(h Handle, e *Enemy) {
	if s.challenge != nil || s.mode != ModeRunning {
		return
	}
	cc := s.cfg.Challenge
	seq := make([]Token, cc.Length)
	for i := range seq {
		seq[i] = cc.Tokens[s.rng.Intn(len(cc.Tokens))] // #nosec G404 -- gameplay only
	}
	s.challenge = &Challenge{
		Target:      h,
		TargetLabel: e.Label,
		Sequence:    seq,
		timer:       NewTimer(cc.Duration, TimerOnce),
	}
	s.mode = ModeChallenge
	s.publish(Event{Kind: EventChallengeStarted, Actor: ActorEnemy, Target: h, Archetype: e.Archetype})
	s.log.Add(s.tick, e.Label, e.Archetype.String(), "challenge", "started",
		fmt.Sprintf("hp %.1f  seq %s", e.HP, FormatTokens(seq)), e.HP)
}

// updateChallenge runs one challenge tick. Input is judged before the
// countdown, so a sequence finished on the last tick still succeeds.
func (s *Sim) updateChallenge(dt float64, in Input) {
	c := s.challenge
	if c == nil {
		s.mode = ModeRunning
		return
	}
	for _, tok := range in.Pressed {
		if !tok.Valid() {
			continue
		}
		if tok != c.Sequence[0] {
			s.log.Add(s.tick, c.TargetLabel, "--", "challenge", "mismatch",
				fmt.Sprintf("want %s got %s", c.Sequence[0], tok), 0)
			s.resolveChallenge(false)
			return
		}
		c.Sequence = c.Sequence[1:]
		if len(c.Sequence) == 0 {
			s.resolveChallenge(true)
			return
		}
	}
	c.timer.Tick(dt)
	if c.timer.JustFinished() {
		s.log.Add(s.tick, c.TargetLabel, "--", "challenge", "timeout",
			fmt.Sprintf("%d tokens left", len(c.Sequence)), float64(len(c.Sequence)))
		s.resolveChallenge(false)
	}
}

// resolveChallenge applies the consequences of the active challenge and
// returns the sim to normal combat. A target that died meanwhile is skipped.
func (s *Sim) resolveChallenge(success bool) {
	c := s.challenge
	if c == nil {
		return
	}
	c.timer.Reset()
	s.challenge = nil
	s.mode = ModeRunning

	p := s.player
	cc := s.cfg.Challenge
	if success {
		s.stats.CounterWins++
		s.destroyEnemy(c.Target, "counter")
		if p != nil {
			p.Fuel = clampf(p.Fuel+cc.FuelReward, 0, p.FuelCapacity)
		}
	} else {
		s.stats.CounterLosses++
		if p != nil {
			if p.State == PlayerOverdrive {
				s.publish(Event{Kind: EventPlayerRegularForm, Actor: ActorPlayer})
			}
			s.publish(Event{Kind: EventPlayerDamaged, Actor: ActorEnemy, Target: c.Target})
			p.Fuel = clampf(p.Fuel-cc.FuelPenalty, 0, p.FuelCapacity)
		}
		if e, ok := s.enemies.Get(c.Target); ok {
			e.HP = clampf(e.HP+e.CounterHeal, 0, e.MaxHP)
		}
	}

	s.publish(Event{Kind: EventChallengeResolved, Actor: ActorEnemy, Target: c.Target, Success: success})
	result := "failure"
	if success {
		result = "success"
	}
	s.log.Add(s.tick, c.TargetLabel, "--", "challenge", "resolved", result, 0)
}
