package runtime

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// configSchema constrains the decoded config file. Validation runs against
// the YAML data before it is bound to the Runtime struct, so a typo'd
// checker name or a bogus worker count fails with a field-level message
// instead of surfacing later as a broken process launch.
const configSchema = `
{
	dir?:                   string & !=""
	checker?:               "tlc" | "apalache"
	workers?:               "auto" | =~"^[1-9][0-9]*$"
	log?:                   string & !=""
	tla2tools_jar?:         string
	community_modules_jar?: string
	apalache_jar?:          string
}
`

// Load reads a YAML config file, validates it against the schema, and
// overlays it on the defaults. Missing fields keep their default values.
func Load(path string) (*Runtime, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	rt := Default()
	if err := yaml.Unmarshal(data, rt); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return rt, nil
}

// validate unifies the decoded config data with the schema and reports the
// first constraint violation.
func validate(raw map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(configSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	data := ctx.Encode(raw)
	if err := data.Err(); err != nil {
		return fmt.Errorf("encode config data: %w", err)
	}

	if err := schema.Unify(data).Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
