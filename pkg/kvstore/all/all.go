// Package all registers every storage backend.
package all

import (
	_ "github.com/wameed/portal/pkg/kvstore/cookie"
	_ "github.com/wameed/portal/pkg/kvstore/memory"
	_ "github.com/wameed/portal/pkg/kvstore/sqlite"
)
