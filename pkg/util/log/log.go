// Copyright 2026 The Quarry Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package log holds the process-wide logger. The default is a nop
// logger; embedding programs install their own via SetLogger.
package log

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Value

func init() {
	logger.Store(zap.NewNop())
}

// Logger returns the current process-wide logger.
func Logger() *zap.Logger {
	return logger.Load().(*zap.Logger)
}

// SetLogger installs l as the process-wide logger. Passing nil restores
// the nop logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}
