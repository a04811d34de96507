/*
Package config parses and validates template manifests and holds the request
for one creation run.

	               +--------------+
	               |   Manifest   |
	               | (normalized) |
	               +------+-------+
	                      |
	                  Validate
	                      |
	      +---------------+---------------+
	      |               |               |
	+-----+-----+   +-----+-----+   +-----+-----+
	|   YAML    |   |   JSON    |   |    HCL    |
	|  Parser   |   |  Parser   |   |  Parser   |
	+-----------+   +-----------+   +-----------+

🎯 Purpose:
- Decodes template.{yaml,yml,json,hcl} into an untyped tree
- Checks the tree against the manifest shape
- Reports every violation, not only the first

🔄 Flow:
1. A parser is picked by file extension (Register / GetParser)
2. The parser returns map[string]any / []any / scalars
3. Validate destructures each transform entry positionally
4. The normalized Manifest is handed to the operation package

📐 Transform entries:

Each entry of "transform" is a sequence read positionally:

	[src target? files? delims? opts*]

After src and the optional target, the rest is matched against an ordered
grammar, longest alternative first:

	files+delims+opts
	files+opts
	delims+opts
	opts

Option keywords are written ":only" and ":raw". When no alternative matches,
the violation names each alternative and the element where it stopped.

🔍 Example:

	m, err := config.Load(ctx, "templates/app/template.yaml")
	if err != nil {
		var sv *config.SchemaViolation
		if errors.As(err, &sv) {
			for _, v := range sv.Violations {
				fmt.Println(v)
			}
		}
		return err
	}
*/
package config
