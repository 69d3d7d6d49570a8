package appconf

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment is the operating environment of the server.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment converts an -env flag value. Unrecognised values map to
// Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

func parseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev", "test", "production", "prod":
		return EnvFlagToEnvironment(s), nil
	}
	return Development, fmt.Errorf("unknown environment %q", s)
}

// UnmarshalYAML accepts the environment by name.
func (e *Environment) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	env, err := parseEnvironment(s)
	if err != nil {
		return err
	}
	*e = env
	return nil
}

func (e Environment) MarshalYAML() (any, error) {
	return e.String(), nil
}
