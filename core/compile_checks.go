package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ ConnectorService  = (*Service)(nil)
	_ OAuthFlowRegistry = (*MemoryOAuthFlowRegistry)(nil)
	_ ConfigRepository  = (*MemoryConfigRepository)(nil)
	_ Tracker           = NopTracker{}
	_ MetricsRecorder   = NopMetricsRecorder{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
