//go:build !linux

package scanner

import "go.uber.org/zap"

// nl80211 only exists on Linux.
func newNativeReader(_ *zap.Logger) LinkReader { return nil }
