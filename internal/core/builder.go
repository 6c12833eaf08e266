package core

import (
	"os"

	"golang.org/x/term"

	"dogechat/config"
	"dogechat/internal/metrics"
	"dogechat/internal/session"
	"dogechat/internal/transport"
	"dogechat/util"
)

// Build constructs the chat mode from the given configuration.
func Build(cfg *config.Config, logger *util.Logger) (Mode, error) {
	// Rejects hostnames up front when DNS is disabled.
	if _, err := util.ResolveAddr(cfg.Host, cfg.Port, cfg.NoDNS); err != nil {
		return nil, err
	}

	return &ChatMode{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Session: session.Options{
			Dialer:       buildDialer(cfg),
			Network:      "tcp",
			WriteTimeout: cfg.WriteTimeout,
			Logger:       logger,
			Metrics:      metrics.New(),
		},
		Logger:      logger,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}, nil
}

// buildDialer creates the right transport.Dialer for the given config.
func buildDialer(cfg *config.Config) transport.Dialer {
	if cfg.Transport == config.TransportWebSocket {
		return &transport.WSDialer{
			Timeout: cfg.Timeout,
			Path:    cfg.WSPath,
		}
	}
	return &transport.TCPDialer{Timeout: cfg.Timeout}
}
