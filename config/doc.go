// Package config loads AILS-CVRP run parameters from defaults, an optional
// parameter file, and CLI flags, in that precedence order (spec.md §6).
// The parameter file's canonical grammar is flat `key=value` lines with
// `#` comments and dotted keys (sisr.maxStringLength, aos.segmentLength,
// ...); a
// `.yaml`/`.yml` parameter file is also accepted as a convenience,
// unmarshaled with gopkg.in/yaml.v3 into the same Settings shape.
package config
