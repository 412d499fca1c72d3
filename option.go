/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package squid

import "time"

// Option tunes how a structured error is built. Options never change the
// recorded settings; they only affect stack capture and time resolution.
type Option func(*buildConfig)

type buildConfig struct {
	// callerSkip is the number of extra frames dropped from the top of a
	// freshly captured stack, on top of the constructor's own frames.
	callerSkip int
	// now supplies the timestamp when Settings.TimeStamp is zero.
	now func() time.Time
}

func newBuildConfig(opts []Option) buildConfig {
	cfg := buildConfig{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithCallerSkip drops n additional frames from the top of a captured stack.
//
// Factories and helpers that build errors on behalf of their caller pass
// WithCallerSkip(1) so that their own frame does not show up in the trace.
// Skips accumulate when the option is given more than once.
func WithCallerSkip(n int) Option {
	return func(c *buildConfig) {
		if n > 0 {
			c.callerSkip += n
		}
	}
}

// WithClock replaces the clock used to stamp errors built without an
// explicit Settings.TimeStamp.
func WithClock(now func() time.Time) Option {
	return func(c *buildConfig) {
		if now != nil {
			c.now = now
		}
	}
}
