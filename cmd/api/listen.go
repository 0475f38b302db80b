package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitalsite/pkg/config"
)

// listenFailure classifies bind errors the operator can act on.
type listenFailure int

const (
	listenFailureOther listenFailure = iota
	listenFailurePrivileges
	listenFailureInUse
)

func listen(target config.ListenTarget, host string) (net.Listener, error) {
	if target.IsPipe() {
		// A stale socket from a previous run would make the bind fail.
		if info, err := os.Stat(target.Pipe); err == nil && info.Mode()&os.ModeSocket != 0 {
			_ = os.Remove(target.Pipe)
		}
	}
	return net.Listen(target.Network(), target.Address(host))
}

func classifyListenError(err error) listenFailure {
	switch {
	case errors.Is(err, syscall.EACCES), errors.Is(err, os.ErrPermission):
		return listenFailurePrivileges
	case errors.Is(err, syscall.EADDRINUSE):
		return listenFailureInUse
	default:
		return listenFailureOther
	}
}

// listenErrorMessage returns the operator message for a known failure.
func listenErrorMessage(target config.ListenTarget, err error) (string, bool) {
	switch classifyListenError(err) {
	case listenFailurePrivileges:
		return fmt.Sprintf("%s requires elevated privileges", target.Bind()), true
	case listenFailureInUse:
		return fmt.Sprintf("%s is already in use", target.Bind()), true
	default:
		return "", false
	}
}

// exitOnListenError logs known bind failures and exits with status 1.
// Anything else is unexpected and crashes the process.
func exitOnListenError(target config.ListenTarget, err error) {
	msg, known := listenErrorMessage(target, err)
	if !known {
		panic(fmt.Errorf("listen on %s: %w", target.Bind(), err))
	}
	log.Error().Err(err).Msg(msg)
	os.Exit(1)
}
