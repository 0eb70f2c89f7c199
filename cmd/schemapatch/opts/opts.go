package opts

import (
	"github.com/ecomstack/schemapatch/pkg/config"
	"github.com/ecomstack/schemapatch/pkg/log"
	"github.com/ecomstack/schemapatch/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	StatusMgr  *status.Manager
	UserLogger *log.UserLogger
	Console    *log.Logger
}
