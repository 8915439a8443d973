package static

import "embed"

//go:embed views/*.html
var Views embed.FS
