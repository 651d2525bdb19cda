package role

import _ "embed"

// rolesData holds the bundled role catalog.
//
//go:embed roles.json
var rolesData []byte
