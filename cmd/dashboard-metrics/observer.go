package main

import (
	"git.sr.ht/~spc/go-log"

	"github.com/iamadya/admybrand-insights-dashboard/internal/configuration"
)

// processObserver applies the settings owned by the process itself.
type processObserver struct {
	listenAddress string
	pauseFile     string
}

func newProcessObserver() *processObserver {
	return &processObserver{}
}

func (p *processObserver) Init(config configuration.DashboardConfiguration) error {
	p.listenAddress = config.ListenAddress
	p.pauseFile = config.PauseFile
	setLogLevel(config.LogLevel)
	return nil
}

func (p *processObserver) Update(config configuration.DashboardConfiguration) error {
	setLogLevel(config.LogLevel)
	if config.ListenAddress != p.listenAddress || config.PauseFile != p.pauseFile {
		log.Warn("listenAddress and pauseFile changes take effect after a restart")
	}
	return nil
}

func (p *processObserver) String() string {
	return "process"
}
