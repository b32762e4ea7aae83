package core

import (
	icore "github.com/extras28/pull-job-position-from-sf4c/internal/core"
	"github.com/extras28/pull-job-position-from-sf4c/pkg/configs"
)

type Core struct {
	*icore.Core
}

func NewCore(conf *configs.SyncConfig) (*Core, error) {
	engine, err := icore.NewCore(conf)
	if err != nil {
		return nil, err
	}

	return &Core{Core: engine}, nil
}
