package bundle

import "embed"

// payload embeds the skill documents that ship with the binary.
// The tree under skills/ is the exact layout installed into a target
// project's .claude/skills directory.
//
//go:embed all:skills
var payload embed.FS
