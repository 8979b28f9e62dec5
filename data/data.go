// Package data embeds the default game content used when no data directory
// or catalog database is configured.
package data

import "embed"

//go:embed scenes.json characters.json dialogue.json outfits.yaml
var FS embed.FS
