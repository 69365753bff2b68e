/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package config declares the validated configuration shared by the TCP server
// and client orchestrators.
package config

import (
	libmap "github.com/go-viper/mapstructure/v2"

	libval "github.com/go-playground/validator/v10"

	"github.com/nabbar/netreactor/duration"
	liberr "github.com/nabbar/netreactor/errors"
)

// Config drives a server listener or a client's connector.
type Config struct {
	// Address is the listen address for a server, or the dial target for a client.
	Address string `mapstructure:"address" json:"address" yaml:"address" toml:"address" validate:"required,hostname_port"`

	// SoReusePort enables SO_REUSEPORT on the listening socket (server only).
	SoReusePort bool `mapstructure:"soReusePort" json:"soReusePort" yaml:"soReusePort" toml:"soReusePort"`

	// SoKeepAlive enables SO_KEEPALIVE on every accepted/connected socket.
	SoKeepAlive bool `mapstructure:"soKeepAlive" json:"soKeepAlive" yaml:"soKeepAlive" toml:"soKeepAlive"`

	// SoNoDelay disables Nagle's algorithm on every accepted/connected socket.
	SoNoDelay bool `mapstructure:"soNoDelay" json:"soNoDelay" yaml:"soNoDelay" toml:"soNoDelay"`

	// NbThread is the size of the loop-thread pool (server) backing accepted
	// connections. Zero keeps every connection on the base loop.
	NbThread int `mapstructure:"nbThread" json:"nbThread" yaml:"nbThread" toml:"nbThread" validate:"gte=0"`

	// HighWaterMark is a queued-output byte threshold. It is validated but not
	// applied: connections built by socket/server/tcp and socket/client/tcp keep
	// tcpconn.DefaultHighWaterMark and have no high-water callback.
	HighWaterMark int `mapstructure:"highWaterMark" json:"highWaterMark" yaml:"highWaterMark" toml:"highWaterMark" validate:"gte=0"`

	// RetryOnDisconnect makes a client reconnect automatically after the peer
	// closes the connection.
	RetryOnDisconnect bool `mapstructure:"retryOnDisconnect" json:"retryOnDisconnect" yaml:"retryOnDisconnect" toml:"retryOnDisconnect"`

	// ConIdleTimeout closes a connection that has exchanged no data for this long.
	// Zero disables idle timeout enforcement.
	ConIdleTimeout duration.Duration `mapstructure:"conIdleTimeout" json:"conIdleTimeout" yaml:"conIdleTimeout" toml:"conIdleTimeout"`
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() liberr.Error {
	if err := libval.New().Struct(c); err != nil {
		return validationErrors(err)
	}
	return nil
}

// Decode fills c from a loosely-typed source such as a parsed YAML/TOML/JSON
// document, a viper.AllSettings() map, or any map[string]interface{}. String
// values for ConIdleTimeout ("30s", "2d12h") are converted through
// duration.ViperDecoderHook instead of requiring a pre-parsed nanosecond count.
func Decode(input interface{}, c *Config) error {
	dec, err := libmap.NewDecoder(&libmap.DecoderConfig{
		DecodeHook:       duration.ViperDecoderHook(),
		WeaklyTypedInput: true,
		Result:           c,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
