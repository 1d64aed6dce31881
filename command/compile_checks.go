package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-connectors/core"
)

var (
	_ gocmd.Commander[CompleteOAuthMessage] = (*CompleteOAuthCommand)(nil)
	_ OAuthCompleter                        = (*core.Service)(nil)
)
